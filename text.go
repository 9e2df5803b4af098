package puppet

import (
	"strconv"
	"strings"
)

// DefaultTransformTemplate is used when the meta declares no transform template
const DefaultTransformTemplate = `{"position":{"x":{x},"y":{y}},"scale":{"x":{scaleX},"y":{scale}},"rotation":{rotation}}`

// TransformText fills the avatar transform template.
//
// Placeholders: {x} {y} (root position), {scale}, {scaleX} (negative when
// mirrored), {rotation} (WebGAL radians), {name}.
func TransformText(a Adjuster) string {
	template := a.TransformTemplate()
	if template == "" {
		template = DefaultTransformTemplate
	}

	pos := a.RootPosition()
	scaleX := a.RootScaleValue()
	if a.ReverseXScale() {
		scaleX = -scaleX
	}

	return strings.NewReplacer(
		"{x}", formatFloat(pos.X()),
		"{y}", formatFloat(pos.Y()),
		"{scaleX}", formatFloat(scaleX),
		"{scale}", formatFloat(a.RootScaleValue()),
		"{rotation}", formatFloat(a.WebGalRotation()),
		"{name}", a.Name(),
	).Replace(template)
}

// MotionText fills the motion template with {name}, {motion} and {expression}
func MotionText(a Adjuster) string {
	return strings.NewReplacer(
		"{name}", a.Name(),
		"{motion}", a.CurMotionName(),
		"{expression}", a.CurExpName(),
	).Replace(a.MotionTemplate())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
