package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a positive integer identifier from the named path
// parameter.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// ParseSeedQuery reads the optional "seed" query parameter. ok is false when
// the parameter is absent.
func ParseSeedQuery(c *gin.Context) (seed uint64, ok bool, err error) {
	raw, present := c.GetQuery("seed")
	if !present || raw == "" {
		return 0, false, nil
	}
	seed, err = strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid seed %q", raw)
	}
	return seed, true, nil
}
