package domain

// Device is a registered launch monitor. Connected/Calibrated reflect what the
// companion app last reported; there is no device-side protocol behind them.
type Device struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	DeviceName      string `json:"deviceName,omitempty"`
	DeviceID        string `json:"deviceId"`
	FirmwareVersion string `json:"firmwareVersion,omitempty"`
	Connected       bool   `json:"connected"`
	Calibrated      bool   `json:"calibrated"`
	CeilingHeight   string `json:"ceilingHeight,omitempty"`
}

// UpdateParams carries a partial device update; nil fields are left untouched.
type UpdateParams struct {
	DeviceName      *string `json:"deviceName"`
	FirmwareVersion *string `json:"firmwareVersion"`
	Connected       *bool   `json:"connected"`
	Calibrated      *bool   `json:"calibrated"`
	CeilingHeight   *string `json:"ceilingHeight"`
}

func (p UpdateParams) Apply(d Device) Device {
	if p.DeviceName != nil {
		d.DeviceName = *p.DeviceName
	}
	if p.FirmwareVersion != nil {
		d.FirmwareVersion = *p.FirmwareVersion
	}
	if p.Connected != nil {
		d.Connected = *p.Connected
	}
	if p.Calibrated != nil {
		d.Calibrated = *p.Calibrated
	}
	if p.CeilingHeight != nil {
		d.CeilingHeight = *p.CeilingHeight
	}
	return d
}
