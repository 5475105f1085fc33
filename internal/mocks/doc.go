// Package mocks contains mocks for the capability interfaces defined
// by the model package. Every mock is a struct where each interface
// method is backed by a MockXXX func field, so a test configures only
// the methods it needs and any unconfigured call panics loudly.
package mocks
