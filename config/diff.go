package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Diff records which sections differ between two configs.
type Diff struct {
	Log      bool
	Metrics  bool
	Discount bool
	Shipping bool
	Storage  bool
	Bookly   bool
}

// DiffConfigs compares old and new section by section.
func DiffConfigs(old, new *Config) Diff {
	return Diff{
		Log:      hashAny(old.Log) != hashAny(new.Log),
		Metrics:  hashAny(old.Metrics) != hashAny(new.Metrics),
		Discount: hashAny(old.Discount) != hashAny(new.Discount),
		Shipping: hashAny(old.Shipping) != hashAny(new.Shipping),
		Storage:  hashAny(old.Storage) != hashAny(new.Storage),
		Bookly:   hashAny(old.Bookly) != hashAny(new.Bookly),
	}
}

// Empty reports whether no section changed.
func (d Diff) Empty() bool {
	return d == Diff{}
}

// StrategiesOnly reports whether the only changes are strategy selections,
// which can be applied to running calculators without a rebuild.
func (d Diff) StrategiesOnly() bool {
	return (d.Discount || d.Shipping) && !d.Log && !d.Metrics && !d.Storage && !d.Bookly
}

func hashAny(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error:%v", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
