// Package render defines the contract shared by the insight renderers and a
// registry to pick one by name.
package render
