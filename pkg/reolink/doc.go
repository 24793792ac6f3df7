// Package reolink is a minimal client for the Reolink download-center API,
// the wp-json endpoint the vendor's own download page calls. It fetches the
// published firmware list for a product/hardware identifier pair and picks
// the newest build by upload timestamp. It deliberately does not interpret
// version strings; ordering them is pkg/version's job.
package reolink
