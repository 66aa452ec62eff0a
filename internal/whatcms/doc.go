// Package whatcms queries the WhatCMS fingerprinting API.
//
// The API is called once per run with the normalized target and a static API
// key. A successful call yields Info (name, version, confidence); an
// "Invalid API key" message yields ErrInvalidAPIKey, which callers treat as a
// valid but minimal outcome. Transport failures, non-200 statuses and
// undecodable bodies are wrapped in errors.ErrAPIRequestFailed and are fatal.
package whatcms
