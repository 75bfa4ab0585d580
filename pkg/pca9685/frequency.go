package pca9685

import "math"

// PrescaleFor converts a PWM frequency to the PRE_SCALE register value,
// rounding to nearest. Frequencies whose prescale falls outside the chip's
// [3, 255] range are rejected.
func PrescaleFor(hz float64) (byte, error) {
	if math.IsNaN(hz) || math.IsInf(hz, 0) || hz <= 0 {
		return 0, invalidf("frequency %v Hz", hz)
	}
	raw := (oscillatorHz/4096.0)/hz - 1.0
	p := math.Floor(raw + 0.5)
	if p < minPrescale || p > maxPrescale {
		return 0, invalidf("frequency %v Hz needs prescale %v outside [%d, %d]", hz, p, minPrescale, maxPrescale)
	}
	return byte(p), nil
}

// SetFrequency reprograms the prescaler for hz. The oscillator is put to
// sleep while PRE_SCALE is written and restarted afterwards. A failure part
// way through leaves the chip as the failed step left it.
func (d *Device) SetFrequency(hz float64) error {
	prescale, err := PrescaleFor(hz)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.program(prescale); err != nil {
		return wrap(OpFrequency, err)
	}
	d.freq = hz
	d.log.Info().Float64("hz", hz).Uint8("prescale", prescale).Msg("frequency set")
	return nil
}

func (d *Device) program(prescale byte) error {
	oldMode, err := d.read(Mode1)
	if err != nil {
		return err
	}
	sleepMode := (oldMode &^ BitRestart) | BitSleep
	if err := d.write(Mode1, sleepMode); err != nil {
		return err
	}
	if err := d.write(Prescale, prescale); err != nil {
		return err
	}
	if err := d.write(Mode1, oldMode); err != nil {
		return err
	}
	d.sleep(settleDelay)
	return d.write(Mode1, oldMode|BitRestart)
}
