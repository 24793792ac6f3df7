package device

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reolink-tools/fwcheck/pkg/errors"
)

// Device is the known-firmware record for a single Reolink unit: the model,
// its hardware revision, and the firmware version last confirmed on it.
type Device struct {
	Model           string `json:"model" yaml:"model"`
	HardwareVersion string `json:"hardware_version" yaml:"hardware_version"`
	Firmware        string `json:"current_firmware_version" yaml:"current_firmware_version"`
}

// Validate checks that all record fields are populated.
func (d Device) Validate() error {
	if strings.TrimSpace(d.Model) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "device model is required")
	}
	if strings.TrimSpace(d.HardwareVersion) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "device hardware version is required")
	}
	if strings.TrimSpace(d.Firmware) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "current firmware version is required")
	}
	return nil
}

// String returns a short human-readable identity for logs.
func (d Device) String() string {
	return fmt.Sprintf("%s (%s)", d.Model, d.HardwareVersion)
}

// entry maps a model to the numeric identifiers the vendor download API
// expects, per hardware revision.
type entry struct {
	productID        int
	hardwareVersions map[string]int
}

// catalog holds the known model/hardware identifier mappings. The vendor
// does not publish these; they are discovered from download-center traffic
// and extended as users report new models.
var catalog = map[string]entry{
	"RLN8-410": {
		productID: 33,
		hardwareVersions: map[string]int{
			"N2MB02": 231,
		},
	},
}

// IDs holds the resolved vendor API identifiers for a device.
type IDs struct {
	ProductID  int
	HardwareID int
}

// Lookup resolves a model and hardware version to vendor API identifiers.
// Matching is case-insensitive on both fields. Unknown models or hardware
// revisions return a NOT_FOUND structured error naming the missing piece.
func Lookup(model, hardwareVersion string) (IDs, error) {
	m := strings.ToUpper(strings.TrimSpace(model))
	hw := strings.ToUpper(strings.TrimSpace(hardwareVersion))

	e, ok := catalog[m]
	if !ok {
		return IDs{}, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("model %q is not in the device catalog (supported: %s)",
				model, strings.Join(SupportedModels(), ", ")),
			map[string]any{"model": model})
	}

	id, ok := e.hardwareVersions[hw]
	if !ok {
		return IDs{}, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("hardware version %q is not known for model %s (supported: %s)",
				hardwareVersion, m, strings.Join(supportedHardware(m), ", ")),
			map[string]any{"model": model, "hardwareVersion": hardwareVersion})
	}

	return IDs{ProductID: e.productID, HardwareID: id}, nil
}

// SupportedModels returns the sorted list of models present in the catalog.
func SupportedModels() []string {
	models := make([]string, 0, len(catalog))
	for m := range catalog {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

func supportedHardware(model string) []string {
	e, ok := catalog[model]
	if !ok {
		return nil
	}
	versions := make([]string, 0, len(e.hardwareVersions))
	for hw := range e.hardwareVersions {
		versions = append(versions, hw)
	}
	sort.Strings(versions)
	return versions
}
