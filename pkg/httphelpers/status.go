package httphelpers

import "acs/pkg/helpers"

// StatusCode returns the HTTP status code for err, per spec.md §7's
// taxonomy. See helpers.StatusCode for the mapping.
func StatusCode(err error) int {
	return helpers.StatusCode(err)
}
