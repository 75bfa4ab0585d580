//go:build !linux

package io

import "errors"

type OutputEnable struct{}

func OpenOutputEnable(chip string, offset int) (*OutputEnable, error) {
	return nil, errors.New("output enable GPIO requires linux")
}

func (o *OutputEnable) Enable() error  { return errors.New("output enable GPIO requires linux") }
func (o *OutputEnable) Disable() error { return errors.New("output enable GPIO requires linux") }
func (o *OutputEnable) Close() error   { return nil }
