package gpio

// Null is an adapter whose pins accept every write and always read low.
type Null struct{}

var _ Adapter = Null{}

func (Null) Pin(number uint8) (pin Pin, err error) {
	return nullPin{}, nil
}

func (Null) HardwarePwm(ch PwmChannel) (pwm Pwm, err error) {
	return nullPin{}, nil
}

type nullPin struct{}

func (nullPin) SetDigital(level bool) error {
	return nil
}

func (nullPin) ReadDigital() (level bool, err error) {
	return
}

func (nullPin) SetPwm(frequency float64, duty float64) error {
	return nil
}
