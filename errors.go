package forcelayout

import "github.com/onnwee/forcelayout/internal/layouterr"

// QuadtreeError is the panic value raised when a NaN coordinate is
// inserted into a force's internal quadtree. Recover it with a type
// assertion to branch on Code without depending on internal packages.
type QuadtreeError = layouterr.Error
