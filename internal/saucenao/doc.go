// Package saucenao implements domain.SearchEngine against the SauceNAO API.
//
// Every search is a single GET on /search.php across all indexes with JSON
// output. Non-200 statuses map to ErrRateLimited (429), ErrUnauthorized
// (401/403) or a generic error carrying the status text. Bodies are parsed
// with gjson so that loosely typed fields (similarity as string or number,
// optional ext_urls) do not need a rigid schema.
package saucenao
