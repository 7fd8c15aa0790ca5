// Package sanitizer provides input normalization for fleet data.
//
// All functions are idempotent - applying them twice produces the same result.
// Invalid input is handled gracefully, typically by returning an empty string
// rather than an error; validation decides whether the result is acceptable.
//
// Normalization includes:
//   - Plates: uppercase, whitespace collapsed to hyphens - "ab 1234" becomes "AB-1234"
//   - Names and locations: whitespace collapsed, trimmed
//   - Phone numbers: converted to E.164 format (+[country][number]) when parseable
//   - Image URLs: HTTPS enforced, host lowercased, tracking parameters stripped
//   - Metadata tags: lowercased, deduplicated, empties dropped
package sanitizer
