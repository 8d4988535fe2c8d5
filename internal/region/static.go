package region

import (
	"context"
	"fmt"
)

// StaticResolver resolves postal codes against the region table.
type StaticResolver struct {
	table Table
}

func NewStaticResolver(table Table) *StaticResolver {
	return &StaticResolver{table: table}
}

func (r *StaticResolver) Resolve(_ context.Context, zipCode string) (string, error) {
	zip, err := NormalizePostalCode(zipCode)
	if err != nil {
		return "", err
	}
	region, ok := r.table.Match(zip)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRegionNotFound, zip)
	}
	return region.Value, nil
}

// SkipResolver never resolves anything. It stands in for the real lookup
// when region resolution is switched off.
type SkipResolver struct{}

func (SkipResolver) Resolve(context.Context, string) (string, error) {
	return "", ErrRegionNotFound
}
