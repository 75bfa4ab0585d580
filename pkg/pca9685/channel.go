package pca9685

// WriteChannel sets the on and off ticks of channel ch, writing ON_L, ON_H,
// OFF_L and OFF_H in that order. The pair is not updated atomically: a
// failure leaves a mix of old and new bytes.
func (d *Device) WriteChannel(ch int, on, off uint16) error {
	if ch < 0 || ch >= Channels {
		return invalidf("channel %d not in [0, %d]", ch, Channels-1)
	}
	if err := checkTicks(on, off); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(OpWriteChannel, d.writePair(channelBase(ch), on, off))
}

// WriteAllChannels sets the on and off ticks of every channel through the
// ALL_LED registers.
func (d *Device) WriteAllChannels(on, off uint16) error {
	if err := checkTicks(on, off); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(OpWriteAll, d.writePair(AllLedOnL, on, off))
}

func checkTicks(on, off uint16) error {
	if on > MaxTick {
		return invalidf("on tick %d exceeds %d", on, MaxTick)
	}
	if off > MaxTick {
		return invalidf("off tick %d exceeds %d", off, MaxTick)
	}
	return nil
}

// writePair writes on/off to the four registers starting at base.
func (d *Device) writePair(base Register, on, off uint16) error {
	seq := [4]byte{byte(on), byte(on >> 8), byte(off), byte(off >> 8)}
	for i, v := range seq {
		if err := d.write(base+Register(i), v); err != nil {
			return err
		}
	}
	return nil
}
