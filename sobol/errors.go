// SPDX-License-Identifier: MIT
package sobol

import "errors"

// errInvalidDimension is returned by New when dim is zero or exceeds
// MaxDimensions.
var errInvalidDimension = errors.New("sobol: dimension out of range")
