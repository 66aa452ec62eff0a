// Package checker defines the cmsaudit scanning pipeline.
//
// Architecture overview:
//
//   - NormalizeTarget picks http:// or https:// for a bare hostname and is the
//     first of two bootstrap steps whose failure aborts the run.
//   - The Runner asks an Identifier (the WhatCMS client) which CMS the target
//     runs; that is the second bootstrap step.
//   - Checkers implement the Checker interface (Name + StartMessage + Check).
//     At most one CMS checker runs, chosen by exact CMS name from the CMSRules
//     table; generic checkers such as HeaderChecker always run afterwards.
//   - Every probe goes through httpclient.Prober, whose absent-response
//     contract means a network failure simply yields no finding.
//
// Execution is strictly sequential; findings are returned in the order the
// probes ran.
package checker
