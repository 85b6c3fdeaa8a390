package app

import (
	_ "embed"

	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"github.com/talkincode/toughpos/internal/store"
)

//go:embed defaults.json
var defaultsJSON []byte

// DefaultDataset decodes and checks the built-in demo shop data
func DefaultDataset() (store.Dataset, error) {
	var d store.Dataset
	if err := storage.Unmarshal(defaultsJSON, &d); err != nil {
		return store.Dataset{}, errors.Wrap(err, "decode default dataset")
	}
	if err := checkDefaults(d); err != nil {
		return store.Dataset{}, errors.Wrap(err, "default dataset")
	}
	for i := range d.Receivables {
		d.Receivables[i] = d.Receivables[i].Normalize()
	}
	return d, nil
}

func checkDefaults(d store.Dataset) error {
	barcodes := make(map[string]string, len(d.Products))
	for _, p := range d.Products {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "product %s", p.ID)
		}
		if owner, ok := barcodes[p.Barcode]; ok {
			return errors.Wrapf(domain.ErrDuplicateBarcode, "%s used by %s and %s", p.Barcode, owner, p.ID)
		}
		barcodes[p.Barcode] = p.ID
	}
	for _, j := range d.MaintenanceJobs {
		if !j.Status.Valid() {
			return errors.Wrapf(domain.ErrInvalidJobStatus, "job %s", j.ID)
		}
	}
	return nil
}
