package touchpad

import "math"

// ConfigParameter names one tunable. Values are always int; booleans are
// encoded as 0/1, percentages as 0..100 device-coordinate-independent
// integers.
type ConfigParameter int

const (
	ConfigNone ConfigParameter = iota
	ConfigTapEnable
	ConfigTapTimeout
	ConfigTapDoubletapTimeout
	ConfigTapMoveThreshold
	ConfigScrollMethods
	ConfigScrollDeltaVert
	ConfigScrollDeltaHoriz
	ConfigMotionHistorySize
	ConfigSoftbuttonRightLeft
	ConfigSoftbuttonRightRight
	ConfigSoftbuttonRightTop
	ConfigSoftbuttonRightBottom
	ConfigSoftbuttonEnterTimeout
	ConfigSoftbuttonLeaveTimeout
	configParameterCount
)

func (k ConfigParameter) String() string {
	names := [...]string{
		"none", "tap-enable", "tap-timeout", "tap-doubletap-timeout",
		"tap-move-threshold", "scroll-methods", "scroll-delta-vert",
		"scroll-delta-horiz", "motion-history-size",
		"softbutton-right-left", "softbutton-right-right",
		"softbutton-right-top", "softbutton-right-bottom",
		"softbutton-enter-timeout", "softbutton-leave-timeout",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// ConfigUseDefault is the sentinel value meaning "leave this parameter at
// its default", matching TOUCHPAD_CONFIG_USE_DEFAULT. No real parameter's
// valid range includes it.
const ConfigUseDefault = math.MinInt32

// ConfigKV is one key/value pair in a Set or Get batch.
type ConfigKV struct {
	Key   ConfigParameter
	Value int
}

// tapConfig holds the tap recognizer's tunables.
type tapConfig struct {
	enabled                bool
	timeoutPeriod          uint32
	doubletapTimeoutPeriod uint32
	moveThreshold          int
}

// scrollConfig holds the scroll recognizer's tunables.
type scrollConfig struct {
	methods ScrollMethod
	vdelta  int
	hdelta  int
}

// buttonConfig holds the soft-button region and debounce tunables. right is
// the soft-button rectangle (left, right, top, bottom) in device
// coordinates once percentages have been resolved against the device's
// announced axis range.
type buttonConfig struct {
	rightLeft, rightRight, rightTop, rightBottom int
	enterTimeout, leaveTimeout                   uint32
}

// touchpadConfig holds tunables that are not specific to one subsystem.
type touchpadConfig struct {
	motionHistorySize int
}

// applyDefaults sets every parameter to its built-in default, grounded on
// tap_defaults/scroll_defaults/touchpad_defaults/button_defaults_dynamic.
func (tp *Touchpad) applyDefaults() {
	tp.tap.config = tapConfig{
		enabled:                true,
		timeoutPeriod:          180,
		doubletapTimeoutPeriod: 180,
		moveThreshold:          30,
	}
	tp.scroll.config = scrollConfig{
		methods: ScrollMethodTwoFingerVertical,
		vdelta:  100,
		hdelta:  100,
	}
	tp.config = touchpadConfig{
		motionHistorySize: 10,
	}
	tp.buttons.config = buttonConfig{
		enterTimeout: 100,
		leaveTimeout: 100,
	}
	tp.setSoftbuttonRightPercent(50, 100, 82, 100)
}

// percentToDeviceUnit maps a 0..100 percentage onto [min, max], with 0%
// clamped to math.MinInt32 and 100% to math.MaxInt32 exactly, per
// config_set_softbutton. Values between are linearly interpolated.
func percentToDeviceUnit(percent, min, max int) int {
	if percent <= 0 {
		return math.MinInt32
	}
	if percent >= 100 {
		return math.MaxInt32
	}
	span := max - min
	return min + (percent*span)/100
}

// deviceUnitToPercent is the inverse of percentToDeviceUnit, rounding
// 0.5 up before truncating, per config_get_softbutton.
func deviceUnitToPercent(value, min, max int) int {
	if value <= math.MinInt32 {
		return 0
	}
	if value >= math.MaxInt32 {
		return 100
	}
	span := max - min
	if span <= 0 {
		return 0
	}
	return ((value-min)*100 + span/2) / span
}

func (tp *Touchpad) setSoftbuttonRightPercent(left, right, top, bottom int) {
	tp.buttons.config.rightLeft = percentToDeviceUnit(left, tp.caps.XMin, tp.caps.XMax)
	tp.buttons.config.rightRight = percentToDeviceUnit(right, tp.caps.XMin, tp.caps.XMax)
	tp.buttons.config.rightTop = percentToDeviceUnit(top, tp.caps.YMin, tp.caps.YMax)
	tp.buttons.config.rightBottom = percentToDeviceUnit(bottom, tp.caps.YMin, tp.caps.YMax)
}

// setOne applies a single key/value pair, returning a *ConfigError if the
// key is unrecognized or the value is out of range. A value of
// ConfigUseDefault resets that parameter to its default.
func (tp *Touchpad) setOne(kv ConfigKV) *ConfigError {
	if kv.Key <= ConfigNone || kv.Key >= configParameterCount {
		return &ConfigError{Code: ConfigErrKeyInvalid, Key: kv.Key}
	}

	if kv.Value == ConfigUseDefault {
		tp.resetOne(kv.Key)
		return nil
	}

	if kv.Key >= ConfigSoftbuttonRightLeft && kv.Key <= ConfigSoftbuttonRightBottom && kv.Value < 0 {
		return &ConfigError{Code: ConfigErrValueTooLow, Key: kv.Key}
	}

	switch kv.Key {
	case ConfigTapEnable:
		tp.tap.config.enabled = kv.Value != 0
	case ConfigTapTimeout:
		tp.tap.config.timeoutPeriod = uint32(kv.Value)
	case ConfigTapDoubletapTimeout:
		tp.tap.config.doubletapTimeoutPeriod = uint32(kv.Value)
	case ConfigTapMoveThreshold:
		if kv.Value < 0 {
			return &ConfigError{Code: ConfigErrValueTooLow, Key: kv.Key}
		}
		tp.tap.config.moveThreshold = kv.Value
	case ConfigScrollMethods:
		tp.scroll.config.methods = ScrollMethod(kv.Value)
	case ConfigScrollDeltaVert:
		if kv.Value <= 0 {
			return &ConfigError{Code: ConfigErrValueTooLow, Key: kv.Key}
		}
		tp.scroll.config.vdelta = kv.Value
	case ConfigScrollDeltaHoriz:
		if kv.Value <= 0 {
			return &ConfigError{Code: ConfigErrValueTooLow, Key: kv.Key}
		}
		tp.scroll.config.hdelta = kv.Value
	case ConfigMotionHistorySize:
		if kv.Value < 1 {
			return &ConfigError{Code: ConfigErrValueTooLow, Key: kv.Key}
		}
		if kv.Value > maxMotionHistorySize {
			return &ConfigError{Code: ConfigErrValueTooHigh, Key: kv.Key}
		}
		tp.config.motionHistorySize = kv.Value
		tp.forEachTouch(func(t *touch) { t.history.reset(kv.Value) })
	case ConfigSoftbuttonRightLeft:
		if kv.Value > 100 {
			return &ConfigError{Code: ConfigErrValueTooHigh, Key: kv.Key}
		}
		tp.buttons.config.rightLeft = percentToDeviceUnit(kv.Value, tp.caps.XMin, tp.caps.XMax)
	case ConfigSoftbuttonRightRight:
		if kv.Value > 100 {
			return &ConfigError{Code: ConfigErrValueTooHigh, Key: kv.Key}
		}
		tp.buttons.config.rightRight = percentToDeviceUnit(kv.Value, tp.caps.XMin, tp.caps.XMax)
	case ConfigSoftbuttonRightTop:
		if kv.Value > 100 {
			return &ConfigError{Code: ConfigErrValueTooHigh, Key: kv.Key}
		}
		tp.buttons.config.rightTop = percentToDeviceUnit(kv.Value, tp.caps.YMin, tp.caps.YMax)
	case ConfigSoftbuttonRightBottom:
		if kv.Value > 100 {
			return &ConfigError{Code: ConfigErrValueTooHigh, Key: kv.Key}
		}
		tp.buttons.config.rightBottom = percentToDeviceUnit(kv.Value, tp.caps.YMin, tp.caps.YMax)
	case ConfigSoftbuttonEnterTimeout:
		tp.buttons.config.enterTimeout = uint32(kv.Value)
	case ConfigSoftbuttonLeaveTimeout:
		tp.buttons.config.leaveTimeout = uint32(kv.Value)
	}
	return nil
}

func (tp *Touchpad) resetOne(key ConfigParameter) {
	defaults := &Touchpad{caps: tp.caps}
	defaults.applyDefaults()
	v, _ := defaults.getOne(key)
	tp.setOne(ConfigKV{Key: key, Value: v})
}

func (tp *Touchpad) getOne(key ConfigParameter) (int, *ConfigError) {
	switch key {
	case ConfigTapEnable:
		if tp.tap.config.enabled {
			return 1, nil
		}
		return 0, nil
	case ConfigTapTimeout:
		return int(tp.tap.config.timeoutPeriod), nil
	case ConfigTapDoubletapTimeout:
		return int(tp.tap.config.doubletapTimeoutPeriod), nil
	case ConfigTapMoveThreshold:
		return tp.tap.config.moveThreshold, nil
	case ConfigScrollMethods:
		return int(tp.scroll.config.methods), nil
	case ConfigScrollDeltaVert:
		return tp.scroll.config.vdelta, nil
	case ConfigScrollDeltaHoriz:
		return tp.scroll.config.hdelta, nil
	case ConfigMotionHistorySize:
		return tp.config.motionHistorySize, nil
	case ConfigSoftbuttonRightLeft:
		return deviceUnitToPercent(tp.buttons.config.rightLeft, tp.caps.XMin, tp.caps.XMax), nil
	case ConfigSoftbuttonRightRight:
		return deviceUnitToPercent(tp.buttons.config.rightRight, tp.caps.XMin, tp.caps.XMax), nil
	case ConfigSoftbuttonRightTop:
		return deviceUnitToPercent(tp.buttons.config.rightTop, tp.caps.YMin, tp.caps.YMax), nil
	case ConfigSoftbuttonRightBottom:
		return deviceUnitToPercent(tp.buttons.config.rightBottom, tp.caps.YMin, tp.caps.YMax), nil
	case ConfigSoftbuttonEnterTimeout:
		return int(tp.buttons.config.enterTimeout), nil
	case ConfigSoftbuttonLeaveTimeout:
		return int(tp.buttons.config.leaveTimeout), nil
	default:
		return 0, &ConfigError{Code: ConfigErrKeyInvalid, Key: key}
	}
}

// Set applies pairs in order, stopping at the first invalid one. pos is
// 0 on full success or the 1-indexed position of the pair that failed;
// cerr describes why. Pairs before the failure have already been applied,
// matching touchpad_config_set's partial-application contract.
func (tp *Touchpad) Set(pairs ...ConfigKV) (pos int, cerr *ConfigError) {
	for i, kv := range pairs {
		if err := tp.setOne(kv); err != nil {
			return i + 1, err
		}
	}
	return 0, nil
}

// Get reads each key in order into the returned slice, stopping at the
// first invalid key. pos is 0 on full success or the 1-indexed position of
// the key that failed. The returned slice holds values for the keys
// successfully read so far.
func (tp *Touchpad) Get(keys ...ConfigParameter) (values []int, pos int, cerr *ConfigError) {
	values = make([]int, 0, len(keys))
	for i, k := range keys {
		v, err := tp.getOne(k)
		if err != nil {
			return values, i + 1, err
		}
		values = append(values, v)
	}
	return values, 0, nil
}
