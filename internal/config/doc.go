// Package config loads, normalizes, and validates immich-stack configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the IMMICH_URL and IMMICH_API_KEY
// environment fallbacks. The [immich] table keeps the url/api_key keys of the
// classic immich.ini layout so existing files only need their values quoted.
//
// Always obtain settings through this package so collaborators receive
// sanitized URLs, canonical log formats, and clear validation errors. The
// pairing engine never reads configuration; callers pass the values they need
// into the Immich client and the stacking runner explicitly.
package config
