package models

import "strings"

// Sex of an entrant. The numeric value is the feature encoding.
type Sex int

const (
	SexUnknown Sex = iota - 1
	SexMale
	SexFemale
	SexGelding
)

// ParseSex maps a raw label onto Sex
func ParseSex(raw string) Sex {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "colt", "horse", "h", "c", "牡":
		return SexMale
	case "female", "f", "mare", "filly", "牝":
		return SexFemale
	case "gelding", "g", "セ", "騸":
		return SexGelding
	default:
		return SexUnknown
	}
}

// Surface is the racing surface type
type Surface int

const (
	SurfaceUnknown Surface = iota
	SurfaceTurf
	SurfaceDirt
	SurfaceJump
)

// ParseSurface maps a raw label onto Surface
func ParseSurface(raw string) Surface {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return SurfaceUnknown
	case s == "turf" || s == "t" || strings.HasPrefix(s, "芝"):
		return SurfaceTurf
	case s == "dirt" || s == "d" || strings.HasPrefix(s, "ダ"):
		return SurfaceDirt
	case s == "jump" || s == "j" || strings.HasPrefix(s, "障"):
		return SurfaceJump
	default:
		return SurfaceUnknown
	}
}

// Known reports whether the surface was recognised
func (s Surface) Known() bool {
	return s != SurfaceUnknown
}

// Same reports whether two surfaces are known and equal
func (s Surface) Same(other Surface) bool {
	return s.Known() && s == other
}

func (s Surface) String() string {
	switch s {
	case SurfaceTurf:
		return "turf"
	case SurfaceDirt:
		return "dirt"
	case SurfaceJump:
		return "jump"
	default:
		return "unknown"
	}
}

// TrackCondition is the going. Known values are ordered good > bad.
type TrackCondition int

const (
	ConditionUnknown TrackCondition = iota - 1
	ConditionBad
	ConditionHeavy
	ConditionSlightlyHeavy
	ConditionGood
)

// ParseTrackCondition maps a raw label onto TrackCondition
func ParseTrackCondition(raw string) TrackCondition {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "good", "firm", "良":
		return ConditionGood
	case "slightly heavy", "slightly-heavy", "slightly_heavy", "yielding", "good to soft", "稍重", "稍":
		return ConditionSlightlyHeavy
	case "heavy", "soft", "重":
		return ConditionHeavy
	case "bad", "不良", "不":
		return ConditionBad
	default:
		return ConditionUnknown
	}
}

// Known reports whether the condition was recognised
func (c TrackCondition) Known() bool {
	return c != ConditionUnknown
}

// Same reports whether two conditions are known and equal
func (c TrackCondition) Same(other TrackCondition) bool {
	return c.Known() && c == other
}

// Weight is the ordinal used for condition-improvement scoring
// (good 3, slightly heavy 2, heavy 1, bad 0).
func (c TrackCondition) Weight() float64 {
	return float64(c)
}

func (c TrackCondition) String() string {
	switch c {
	case ConditionGood:
		return "good"
	case ConditionSlightlyHeavy:
		return "slightly_heavy"
	case ConditionHeavy:
		return "heavy"
	case ConditionBad:
		return "bad"
	default:
		return "unknown"
	}
}
