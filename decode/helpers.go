package decode

import (
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/diag"
)

// fatal records a fatal-for-command diagnostic naming the field that
// failed to read. The command's argument buffer was already fully
// extracted by the frame reader before decode began, so there is
// nothing left to fast-forward past; the decoder simply stops
// consuming further fields and returns whatever it built so far.
func fatal(diags *diag.List, class, id int, label, field string, err error) {
	diags.Fatal(class, id, label, "could not read %s: %v", field, err)
}

func unsupported(diags *diag.List, class, id int, label, format string, args ...interface{}) {
	diags.Unsupported(class, id, label, format, args...)
}

// kindLabel is used as the diagnostic label before a Command's Kind is
// known to have decoded successfully; each decoder passes its own
// element name instead where one is more informative.
func kindLabel(k command.Kind) string {
	return kindNames[k]
}

var kindNames = map[command.Kind]string{
	command.KindNoOp: "NOOP",
	command.KindBeginMetafile: "BEGMF",
	command.KindEndMetafile: "ENDMF",
	command.KindBeginPicture: "BEGPIC",
	command.KindBeginPictureBody: "BEGPICBODY",
	command.KindEndPicture: "ENDPIC",
	command.KindBeginFigure: "BEGFIGURE",
	command.KindEndFigure: "ENDFIGURE",
	command.KindBeginApplicationStructure: "BEGAPS",
	command.KindBeginApplicationStructureBody: "BEGAPSBODY",
	command.KindEndApplicationStructure: "ENDAPS",
	command.KindMessage0: "MESSAGE",
	command.KindMetafileVersion: "mfversion",
	command.KindMetafileDescription: "mfdesc",
	command.KindVDCType: "vdctype",
	command.KindIntegerPrecision: "integerprec",
	command.KindRealPrecision: "realprec",
	command.KindIndexPrecision: "indexprec",
	command.KindColourPrecision: "colrprec",
	command.KindColourIndexPrecision: "colrindexprec",
	command.KindMaximumColourIndex: "maxcolrindex",
	command.KindColourValueExtent: "colrvalueext",
	command.KindMetafileElementList: "mfelemlist",
	command.KindFontList: "fontlist",
	command.KindCharacterSetList: "charsetlist",
	command.KindCharacterCodingAnnouncer: "charcoding",
	command.KindMaximumVDCExtent: "maxvdcext",
	command.KindFontProperties: "fontprop",
	command.KindScalingMode: "scalemode",
	command.KindColourSelectionMode: "colrmode",
	command.KindLineWidthSpecificationMode: "linewidthmode",
	command.KindMarkerSizeSpecificationMode: "markersizemode",
	command.KindEdgeWidthSpecificationMode: "edgewidthmode",
	command.KindVDCExtent: "vdcext",
	command.KindBackgroundColour: "backcolr",
	command.KindLineAndEdgeTypeDefinition: "lineedgetypedef",
	command.KindVDCIntegerPrecision: "vdcintegerprec",
	command.KindVDCRealPrecision: "vdcrealprec",
	command.KindTransparency: "transparency",
	command.KindClipIndicator: "clipindicator",
	command.KindLineTypeContinuation: "linetypecont",
	command.KindPolyline: "LINE",
	command.KindDisjointPolyline: "DISJTLINE",
	command.KindText: "TEXT",
	command.KindRestrictedText: "RESTRTEXT",
	command.KindPolygon: "POLYGON",
	command.KindCircle: "CIRCLE",
	command.KindCircularArcCentre: "ARCCTR",
	command.KindEllipse: "ELLIPSE",
	command.KindEllipticalArc: "ELLIPARC",
	command.KindPolybezier: "POLYBEZIER",
	command.KindLineType: "linetype",
	command.KindLineWidth: "linewidth",
	command.KindLineColour: "linecolr",
	command.KindTextFontIndex: "textfontindex",
	command.KindCharacterExpansionFactor: "charexpfac",
	command.KindTextColour: "textcolr",
	command.KindCharacterHeight: "charheight",
	command.KindCharacterOrientation: "charori",
	command.KindTextAlignment: "textalign",
	command.KindCharacterSetIndex: "charsetindex",
	command.KindAlternateCharacterSetIndex: "altcharsetindex",
	command.KindInteriorStyle: "intstyle",
	command.KindFillColour: "fillcolr",
	command.KindEdgeType: "edgetype",
	command.KindEdgeWidth: "edgewidth",
	command.KindEdgeColour: "edgecolr",
	command.KindEdgeVisibility: "edgevis",
	command.KindColourTable: "colrtable",
	command.KindLineCap: "linecap",
	command.KindLineJoin: "linejoin",
	command.KindRestrictedTextType: "restrtexttype",
	command.KindEdgeCap: "edgecap",
	command.KindEdgeJoin: "edgejoin",
	command.KindGeometricPatternDefinition: "pattable",
	command.KindMessage: "MESSAGE",
	command.KindApplicationStructureAttribute: "appstructattr",
}
