package pca9685

// Bus is a single-byte register transport to devices on one two-wire bus.
// Each call is one complete, synchronous bus transaction.
type Bus interface {
	ReadReg(addr uint16, reg byte) (byte, error)
	WriteReg(addr uint16, reg, value byte) error
	Close() error
}

// ReadRegister reads one register directly from the chip.
func (d *Device) ReadRegister(reg Register) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.read(reg)
	return v, wrap(OpRead, err)
}

// WriteRegister writes one register on the chip.
func (d *Device) WriteRegister(reg Register, value byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(OpWrite, d.write(reg, value))
}

// Mode1 returns the current MODE1 register as read from the chip.
func (d *Device) Mode1() (byte, error) {
	return d.ReadRegister(Mode1)
}

func (d *Device) read(reg Register) (byte, error) {
	if d.bus == nil {
		return 0, ErrClosed
	}
	v, err := d.bus.ReadReg(d.addr, byte(reg))
	if err != nil {
		return 0, &TransportError{Op: "read", Addr: d.addr, Reg: reg, Err: err}
	}
	d.log.Debug().Uint8("reg", byte(reg)).Uint8("value", v).Msg("read")
	return v, nil
}

func (d *Device) write(reg Register, value byte) error {
	if d.bus == nil {
		return ErrClosed
	}
	if err := d.bus.WriteReg(d.addr, byte(reg), value); err != nil {
		return &TransportError{Op: "write", Addr: d.addr, Reg: reg, Err: err}
	}
	d.log.Debug().Uint8("reg", byte(reg)).Uint8("value", value).Msg("write")
	return nil
}
