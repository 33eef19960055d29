package settings

// Key names a persisted setting. Keys are written to user settings files
// and must never be renamed without a migration.
type Key string

const (
	Ruleset                  Key = "Ruleset"
	Skin                     Key = "Skin"
	Token                    Key = "Token"
	Username                 Key = "Username"
	SavePassword             Key = "SavePassword"
	SaveUsername             Key = "SaveUsername"
	ExternalLinkWarning      Key = "ExternalLinkWarning"
	NotifyOnUsernameMention  Key = "NotifyOnUsernameMentioned"
	NotifyOnPrivateMessage   Key = "NotifyOnPrivateMessage"
	VolumeInactive           Key = "VolumeInactive"
	MenuVoice                Key = "MenuVoice"
	MenuMusic                Key = "MenuMusic"
	AudioOffset              Key = "AudioOffset"
	MenuCursorSize           Key = "MenuCursorSize"
	GameplayCursorSize       Key = "GameplayCursorSize"
	ShowStoryboard           Key = "ShowStoryboard"
	Prefer24HourTime         Key = "Prefer24HourTime"
	PositionalHitsounds      Key = "PositionalHitsounds"
	PositionalHitsoundsLevel Key = "PositionalHitsoundsLevel"
	DimLevel                 Key = "DimLevel"
	BlurLevel                Key = "BlurLevel"
	HUDVisibilityMode        Key = "HUDVisibilityMode"
	DisplayStarsMinimum      Key = "DisplayStarsMinimum"
	DisplayStarsMaximum      Key = "DisplayStarsMaximum"
	ReleaseStream            Key = "ReleaseStream"
	Version                  Key = "Version"
	ShowFirstRunSetup        Key = "ShowFirstRunSetup"
	ScreenshotFormat         Key = "ScreenshotFormat"
	Scaling                  Key = "Scaling"
	UIScale                  Key = "UIScale"
	UIHoldActivationDelay    Key = "UIHoldActivationDelay"
	IntroSequence            Key = "IntroSequence"
)

// Type is the value type of a setting.
type Type int

const (
	TypeBool Type = iota
	TypeInt
	TypeFloat
	TypeString
)

// String returns the string representation of Type.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Definition describes a setting's type, default and constraints.
type Definition struct {
	Key     Key
	Type    Type
	Default any

	// Numeric settings with HasRange are clamped to [Min, Max].
	HasRange bool
	Min      float64
	Max      float64

	// Precision rounds numeric values to a multiple of itself when non-zero.
	Precision float64

	// Choices restricts string settings to an enumerated set.
	Choices []string

	// Private settings are excluded from LoggableState.
	Private bool
}

func boolSetting(k Key, def bool) Definition {
	return Definition{Key: k, Type: TypeBool, Default: def}
}

func stringSetting(k Key, def string) Definition {
	return Definition{Key: k, Type: TypeString, Default: def}
}

func choiceSetting(k Key, def string, choices ...string) Definition {
	return Definition{Key: k, Type: TypeString, Default: def, Choices: choices}
}

func floatSetting(k Key, def, lo, hi, precision float64) Definition {
	return Definition{Key: k, Type: TypeFloat, Default: def, HasRange: true, Min: lo, Max: hi, Precision: precision}
}

func intSetting(k Key, def, lo, hi, step int) Definition {
	return Definition{Key: k, Type: TypeInt, Default: def, HasRange: true, Min: float64(lo), Max: float64(hi), Precision: float64(step)}
}

// definitions lists every known setting.
var definitions = []Definition{
	stringSetting(Ruleset, ""),
	stringSetting(Skin, "argon"),

	// Online
	stringSetting(Username, ""),
	{Key: Token, Type: TypeString, Default: "", Private: true},
	boolSetting(SavePassword, false),
	boolSetting(SaveUsername, true),
	boolSetting(ExternalLinkWarning, true),
	boolSetting(NotifyOnUsernameMention, true),
	boolSetting(NotifyOnPrivateMessage, true),

	// Audio
	floatSetting(VolumeInactive, 0.25, 0, 1, 0.01),
	boolSetting(MenuVoice, true),
	boolSetting(MenuMusic, true),
	intSetting(AudioOffset, 0, -500, 500, 1),

	// Input
	floatSetting(MenuCursorSize, 1, 0.5, 2, 0.01),
	floatSetting(GameplayCursorSize, 1, 0.1, 2, 0.01),

	// Graphics
	boolSetting(ShowStoryboard, true),
	boolSetting(Prefer24HourTime, false),

	// Gameplay
	boolSetting(PositionalHitsounds, true),
	floatSetting(PositionalHitsoundsLevel, 0.2, 0, 1, 0),
	floatSetting(DimLevel, 0.8, 0, 1, 0.01),
	floatSetting(BlurLevel, 0, 0, 1, 0.01),
	choiceSetting(HUDVisibilityMode, "always", "never", "hide_during_gameplay", "always"),
	floatSetting(DisplayStarsMinimum, 0, 0, 10, 0.1),
	floatSetting(DisplayStarsMaximum, 10.1, 0, 10.1, 0.1),

	// Update
	choiceSetting(ReleaseStream, "lazer", "lazer", "tachyon"),
	stringSetting(Version, ""),
	boolSetting(ShowFirstRunSetup, true),
	choiceSetting(ScreenshotFormat, "jpg", "jpg", "png"),
	choiceSetting(Scaling, "off", "off", "everything", "gameplay", "menus"),
	floatSetting(UIScale, 1, 0.8, 1.6, 0.01),
	intSetting(UIHoldActivationDelay, 200, 0, 500, 50),
	choiceSetting(IntroSequence, "triangles", "circles", "welcome", "triangles", "random"),
}

var definitionsByKey = func() map[Key]Definition {
	m := make(map[Key]Definition, len(definitions))
	for _, d := range definitions {
		m[d.Key] = d
	}
	return m
}()

// Lookup returns the definition for key.
func Lookup(key Key) (Definition, bool) {
	d, ok := definitionsByKey[key]
	return d, ok
}

// Keys returns every known key in definition order.
func Keys() []Key {
	keys := make([]Key, len(definitions))
	for i, d := range definitions {
		keys[i] = d.Key
	}
	return keys
}
