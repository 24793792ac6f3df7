package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reolink-tools/fwcheck/pkg/errors"
)

func TestLookupKnownModel(t *testing.T) {
	ids, err := Lookup("RLN8-410", "N2MB02")
	require.NoError(t, err)
	assert.Equal(t, 33, ids.ProductID)
	assert.Equal(t, 231, ids.HardwareID)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	ids, err := Lookup(" rln8-410 ", "n2mb02")
	require.NoError(t, err)
	assert.Equal(t, 33, ids.ProductID)
	assert.Equal(t, 231, ids.HardwareID)
}

func TestLookupUnknownModel(t *testing.T) {
	_, err := Lookup("RLC-810A", "IPC_560B")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestLookupUnknownHardware(t *testing.T) {
	_, err := Lookup("RLN8-410", "N7MB01")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "N7MB01")
}

func TestSupportedModels(t *testing.T) {
	models := SupportedModels()
	assert.Contains(t, models, "RLN8-410")
}

func TestDeviceValidate(t *testing.T) {
	valid := Device{
		Model:           "RLN8-410",
		HardwareVersion: "N2MB02",
		Firmware:        "v3.5.1.368_25010326",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		d    Device
	}{
		{"missing model", Device{HardwareVersion: "N2MB02", Firmware: "v3.5.1.368"}},
		{"missing hardware", Device{Model: "RLN8-410", Firmware: "v3.5.1.368"}},
		{"missing firmware", Device{Model: "RLN8-410", HardwareVersion: "N2MB02"}},
		{"blank firmware", Device{Model: "RLN8-410", HardwareVersion: "N2MB02", Firmware: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}

func TestDeviceString(t *testing.T) {
	d := Device{Model: "RLN8-410", HardwareVersion: "N2MB02"}
	assert.Equal(t, "RLN8-410 (N2MB02)", d.String())
}
