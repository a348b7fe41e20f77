package eq

// Settings is an immutable snapshot of every equalizer parameter, read
// once per block. It does not validate; ranges are enforced by [Params].
type Settings struct {
	PeakFreq    float64 // Hz
	PeakGainDB  float64 // dB
	PeakQuality float64

	LowCutFreq  float64 // Hz
	HighCutFreq float64 // Hz

	LowCutSlope  Slope
	HighCutSlope Slope

	LowCutBypassed  bool
	PeakBypassed    bool
	HighCutBypassed bool
}

// DefaultSettings returns the parameter store defaults: cuts wide open at
// 12 dB/oct and a flat peak at 750 Hz.
func DefaultSettings() Settings {
	return Settings{
		PeakFreq:     750,
		PeakGainDB:   0,
		PeakQuality:  1,
		LowCutFreq:   20,
		HighCutFreq:  20000,
		LowCutSlope:  Slope12,
		HighCutSlope: Slope12,
	}
}

// SettingsSource supplies the latest snapshot. Implementations are read
// from the audio goroutine and must not block or allocate.
type SettingsSource interface {
	Settings() Settings
}

// StaticSettings is a SettingsSource that always returns the same snapshot.
type StaticSettings Settings

// Settings implements SettingsSource.
func (s StaticSettings) Settings() Settings {
	return Settings(s)
}

// MaxChannels is the widest supported bus.
const MaxChannels = 2

// SupportsChannels reports whether a bus with n channels can be processed.
// Only mono and stereo layouts are supported.
func SupportsChannels(n int) bool {
	return n == 1 || n == MaxChannels
}
