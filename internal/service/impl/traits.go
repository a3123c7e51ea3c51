package impl

// defaultTraits maps the two-letter device type prefix to the capabilities the device
// advertises when the caller does not supply any.
var defaultTraits = map[string][]string{
	"LT": {"action.devices.traits.OnOff", "action.devices.traits.Brightness"},
	"CL": {"action.devices.traits.OnOff", "action.devices.traits.ColorSetting"},
	"SW": {"action.devices.traits.OnOff"},
	"PL": {"action.devices.traits.OnOff"},
	"TH": {"action.devices.traits.TemperatureSetting"},
	"FN": {"action.devices.traits.OnOff", "action.devices.traits.FanSpeed"},
	"CR": {"action.devices.traits.OpenClose"},
	"SN": {"action.devices.traits.SensorState"},
}

func DefaultTraitsForType(deviceType string) []string {
	traits, ok := defaultTraits[deviceType]
	if !ok {
		return []string{}
	}
	out := make([]string, len(traits))
	copy(out, traits)
	return out
}
