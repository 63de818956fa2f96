package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func init() {
	register(4, 1, decodePolyline)
	register(4, 2, decodeDisjointPolyline)
	register(4, 4, decodeText)
	register(4, 5, decodeRestrictedText)
	register(4, 7, decodePolygon)
	register(4, 12, decodeCircle)
	register(4, 15, decodeCircularArcCentre)
	register(4, 17, decodeEllipse)
	register(4, 18, decodeEllipticalArc)
	register(4, 26, decodePolybezier)
}

// decodePointListCommand is shared by every primitive whose body is
// "consume the remaining argument bytes as a point list": polyline,
// disjoint polyline, polygon and polybezier.
func decodePointListCommand(rd *binary.Reader, diags *diag.List, class, id int, kind command.Kind) command.Command {
	pts, discarded, err := rd.PointList()
	if err != nil {
		fatal(diags, class, id, kindLabel(kind), "point list", err)
	}
	if discarded {
		unsupported(diags, class, id, kindLabel(kind), "trailing point-list fragment shorter than one point discarded")
	}
	return command.Command{Class: class, ID: id, Kind: kind, Points: pts}
}

func decodePolyline(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodePointListCommand(rd, diags, class, id, command.KindPolyline)
}

func decodeDisjointPolyline(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodePointListCommand(rd, diags, class, id, command.KindDisjointPolyline)
}

func decodePolygon(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodePointListCommand(rd, diags, class, id, command.KindPolygon)
}

func decodePolybezier(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodePointListCommand(rd, diags, class, id, command.KindPolybezier)
}

func decodeText(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindText)
	p, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "text position", err)
		return command.Command{Class: class, ID: id, Kind: command.KindText}
	}
	final, err := rd.Bool()
	if err != nil {
		fatal(diags, class, id, label, "final flag", err)
		return command.Command{Class: class, ID: id, Kind: command.KindText, Point: p}
	}
	s, err := rd.String()
	if err != nil {
		fatal(diags, class, id, label, "text string", err)
		return command.Command{Class: class, ID: id, Kind: command.KindText, Point: p, Bool: final}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindText, Point: p, Bool: final, Str: s}
}

// decodeRestrictedText reads a delta width and delta height (two VDCs)
// followed by the same fields as Text, and records the context's
// current restricted text type (context.RestrictedTextType) in Mode;
// no restricted-text-type value is read from the element itself.
func decodeRestrictedText(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindRestrictedText)
	dx, err := rd.VDC()
	if err != nil {
		fatal(diags, class, id, label, "delta width", err)
		return command.Command{Class: class, ID: id, Kind: command.KindRestrictedText}
	}
	dy, err := rd.VDC()
	if err != nil {
		fatal(diags, class, id, label, "delta height", err)
		return command.Command{Class: class, ID: id, Kind: command.KindRestrictedText}
	}
	p, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "text position", err)
		return command.Command{Class: class, ID: id, Kind: command.KindRestrictedText, Point2: command.Point{X: dx, Y: dy}}
	}
	final, err := rd.Bool()
	if err != nil {
		fatal(diags, class, id, label, "final flag", err)
		return command.Command{Class: class, ID: id, Kind: command.KindRestrictedText, Point: p, Point2: command.Point{X: dx, Y: dy}}
	}
	s, err := rd.String()
	if err != nil {
		fatal(diags, class, id, label, "text string", err)
		return command.Command{Class: class, ID: id, Kind: command.KindRestrictedText, Point: p, Point2: command.Point{X: dx, Y: dy}, Bool: final}
	}
	return command.Command{
		Class: class, ID: id, Kind: command.KindRestrictedText,
		Point: p, Point2: command.Point{X: dx, Y: dy}, Bool: final, Str: s,
		Mode: int(ctx.RestrictedTextType),
	}
}

func decodeCircle(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindCircle)
	centre, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "centre", err)
		return command.Command{Class: class, ID: id, Kind: command.KindCircle}
	}
	radius, err := rd.VDC()
	if err != nil {
		fatal(diags, class, id, label, "radius", err)
		return command.Command{Class: class, ID: id, Kind: command.KindCircle, Point: centre}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindCircle, Point: centre, Real: radius}
}

// decodeCircularArcCentre reads the centre, then the start and end
// vectors as points (following ISO 8632-3's encoding of a vector as an
// (x, y) pair sharing the picture's VDC precision), then the radius as
// a single VDC.
func decodeCircularArcCentre(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindCircularArcCentre)
	centre, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "centre", err)
		return command.Command{Class: class, ID: id, Kind: command.KindCircularArcCentre}
	}
	start, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "start vector", err)
		return command.Command{Class: class, ID: id, Kind: command.KindCircularArcCentre, Point: centre}
	}
	end, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "end vector", err)
		return command.Command{Class: class, ID: id, Kind: command.KindCircularArcCentre, Point: centre, Point2: start}
	}
	radius, err := rd.VDC()
	if err != nil {
		fatal(diags, class, id, label, "radius", err)
		return command.Command{Class: class, ID: id, Kind: command.KindCircularArcCentre, Point: centre, Point2: start, Point3: end}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindCircularArcCentre, Point: centre, Point2: start, Point3: end, Real: radius}
}

func decodeEllipse(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindEllipse)
	centre, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "centre", err)
		return command.Command{Class: class, ID: id, Kind: command.KindEllipse}
	}
	first, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "first conjugate diameter end point", err)
		return command.Command{Class: class, ID: id, Kind: command.KindEllipse, Point: centre}
	}
	second, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "second conjugate diameter end point", err)
		return command.Command{Class: class, ID: id, Kind: command.KindEllipse, Point: centre, Point2: first}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindEllipse, Point: centre, Point2: first, Point3: second}
}

func decodeEllipticalArc(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindEllipticalArc)
	centre, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "centre", err)
		return command.Command{Class: class, ID: id, Kind: command.KindEllipticalArc}
	}
	first, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "first conjugate diameter end point", err)
		return command.Command{Class: class, ID: id, Kind: command.KindEllipticalArc, Point: centre}
	}
	second, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "second conjugate diameter end point", err)
		return command.Command{Class: class, ID: id, Kind: command.KindEllipticalArc, Point: centre, Point2: first}
	}
	start, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "start vector", err)
		return command.Command{Class: class, ID: id, Kind: command.KindEllipticalArc, Point: centre, Point2: first, Point3: second}
	}
	end, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "end vector", err)
		return command.Command{Class: class, ID: id, Kind: command.KindEllipticalArc, Point: centre, Point2: first, Point3: second, Point4: start}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindEllipticalArc, Point: centre, Point2: first, Point3: second, Point4: start, Point5: end}
}
