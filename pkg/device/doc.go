// Package device defines the known-firmware record for a Reolink unit and
// the catalog that maps model/hardware identifiers to the numeric IDs used
// by the vendor download API.
package device
