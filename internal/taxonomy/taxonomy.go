// Package taxonomy holds the static command-classification table (§6
// "Command taxonomy"): a closed mapping from every recognised LaTeX
// command name to the role it plays, consumed by the semantic/latex
// extraction pass and by every feature analysis that needs to know "is
// this a citation command", "is this a section command and at what
// level", etc.
package taxonomy

// Role classifies a command's grammatical role.
type Role int

const (
	RoleGeneric Role = iota
	RoleSection
	RoleInclude
	RoleImport
	RoleLabelDefinition
	RoleLabelReference
	RoleLabelReferenceRange
	RoleLabelNumber
	RoleCommandDefinition
	RoleMathOperator
	RoleGlossaryEntryDefinition
	RoleGlossaryEntryReference
	RoleAcronymDefinition
	RoleAcronymDeclaration
	RoleAcronymReference
	RoleTheoremDefinition
	RoleColorReference
	RoleColorDefinition
	RoleColorSetDefinition
	RoleTikzLibraryImport
	RoleEnvironmentDefinition
	RoleGraphicsPath
	RoleCaption
	RoleEnumItem
	RoleBlockComment
	RoleCitation
)

// IncludeKind further classifies a RoleInclude command.
type IncludeKind int

const (
	IncludeNone IncludeKind = iota
	IncludePackage
	IncludeClass
	IncludeLatex
	IncludeBibtex
	IncludeBiblatex
	IncludeGraphics
	IncludeSVG
	IncludeInkscape
	IncludeVerbatim
)

// Entry describes one command's classification and, where relevant, the
// argument index (0-based) holding the payload the role cares about
// (e.g. the key-list argument of \cite, the path argument of
// \includegraphics).
type Entry struct {
	Role        Role
	IncludeKind IncludeKind
	ArgIndex    int
	// Extensions for RoleInclude: the file extensions to try, in order,
	// when resolving a relative include target (§4.2).
	Extensions []string
	// SectionLevel orders RoleSection commands for symbol/outline nesting
	// (lower = higher in the document, e.g. part=0, chapter=1, ...).
	SectionLevel int
}

// Table is the full 70-entry static command taxonomy. Command names
// include the leading backslash, without a trailing "*" (callers strip
// it, since starred and unstarred variants share a classification).
var Table = map[string]Entry{
	// Sectioning, ordered per LaTeX's own hierarchy.
	`\part`:          {Role: RoleSection, SectionLevel: 0},
	`\chapter`:       {Role: RoleSection, SectionLevel: 1},
	`\section`:       {Role: RoleSection, SectionLevel: 2},
	`\subsection`:    {Role: RoleSection, SectionLevel: 3},
	`\subsubsection`: {Role: RoleSection, SectionLevel: 4},
	`\paragraph`:     {Role: RoleSection, SectionLevel: 5},
	`\subparagraph`:  {Role: RoleSection, SectionLevel: 6},

	// Labels.
	`\label`:    {Role: RoleLabelDefinition, ArgIndex: 0},
	`\ref`:      {Role: RoleLabelReference, ArgIndex: 0},
	`\eqref`:    {Role: RoleLabelReference, ArgIndex: 0},
	`\nameref`:  {Role: RoleLabelReference, ArgIndex: 0},
	`\autoref`:  {Role: RoleLabelReference, ArgIndex: 0},
	`\pageref`:  {Role: RoleLabelNumber, ArgIndex: 0},
	`\crefrange`:     {Role: RoleLabelReferenceRange, ArgIndex: 0},
	`\Crefrange`:     {Role: RoleLabelReferenceRange, ArgIndex: 0},
	`\cref`:     {Role: RoleLabelReference, ArgIndex: 0},
	`\Cref`:     {Role: RoleLabelReference, ArgIndex: 0},

	// Citations (extensible via Config.CitationCommands too).
	`\cite`:        {Role: RoleCitation, ArgIndex: 0},
	`\citep`:       {Role: RoleCitation, ArgIndex: 0},
	`\citet`:       {Role: RoleCitation, ArgIndex: 0},
	`\citeauthor`:  {Role: RoleCitation, ArgIndex: 0},
	`\citeyear`:    {Role: RoleCitation, ArgIndex: 0},
	`\nocite`:      {Role: RoleCitation, ArgIndex: 0},
	`\parencite`:   {Role: RoleCitation, ArgIndex: 0},
	`\textcite`:    {Role: RoleCitation, ArgIndex: 0},
	`\fullcite`:    {Role: RoleCitation, ArgIndex: 0},
	`\footcite`:    {Role: RoleCitation, ArgIndex: 0},

	// Includes.
	`\usepackage`:     {Role: RoleInclude, IncludeKind: IncludePackage, ArgIndex: 0, Extensions: []string{".sty"}},
	`\RequirePackage`: {Role: RoleInclude, IncludeKind: IncludePackage, ArgIndex: 0, Extensions: []string{".sty"}},
	`\documentclass`:  {Role: RoleInclude, IncludeKind: IncludeClass, ArgIndex: 0, Extensions: []string{".cls"}},
	`\LoadClass`:       {Role: RoleInclude, IncludeKind: IncludeClass, ArgIndex: 0, Extensions: []string{".cls"}},
	`\include`:         {Role: RoleInclude, IncludeKind: IncludeLatex, ArgIndex: 0, Extensions: []string{".tex"}},
	`\input`:           {Role: RoleInclude, IncludeKind: IncludeLatex, ArgIndex: 0, Extensions: []string{".tex"}},
	`\subfile`:         {Role: RoleInclude, IncludeKind: IncludeLatex, ArgIndex: 0, Extensions: []string{".tex"}},
	`\addbibresource`:  {Role: RoleInclude, IncludeKind: IncludeBiblatex, ArgIndex: 0, Extensions: []string{".bib"}},
	`\bibliography`:    {Role: RoleInclude, IncludeKind: IncludeBibtex, ArgIndex: 0, Extensions: []string{".bib"}},
	`\includegraphics`: {Role: RoleInclude, IncludeKind: IncludeGraphics, ArgIndex: 0, Extensions: []string{".pdf", ".png", ".jpg", ".jpeg", ".eps"}},
	`\includesvg`:      {Role: RoleInclude, IncludeKind: IncludeSVG, ArgIndex: 0, Extensions: []string{".svg"}},
	`\includeinkscape`: {Role: RoleInclude, IncludeKind: IncludeInkscape, ArgIndex: 0, Extensions: []string{".svg"}},
	`\verbatiminput`:   {Role: RoleInclude, IncludeKind: IncludeVerbatim, ArgIndex: 0, Extensions: []string{".txt"}},
	`\lstinputlisting`: {Role: RoleInclude, IncludeKind: IncludeVerbatim, ArgIndex: 0, Extensions: []string{".txt"}},

	`\import`:       {Role: RoleImport, ArgIndex: 1},
	`\subimport`:    {Role: RoleImport, ArgIndex: 1},
	`\inputfrom`:    {Role: RoleImport, ArgIndex: 1},
	`\includefrom`:  {Role: RoleImport, ArgIndex: 1},

	// Command/environment definitions.
	`\newcommand`:    {Role: RoleCommandDefinition, ArgIndex: 0},
	`\renewcommand`:  {Role: RoleCommandDefinition, ArgIndex: 0},
	`\providecommand`: {Role: RoleCommandDefinition, ArgIndex: 0},
	`\DeclareMathOperator`: {Role: RoleMathOperator, ArgIndex: 0},
	`\newenvironment`:  {Role: RoleEnvironmentDefinition, ArgIndex: 0},
	`\renewenvironment`: {Role: RoleEnvironmentDefinition, ArgIndex: 0},

	// Theorem-like environments.
	`\newtheorem`: {Role: RoleTheoremDefinition, ArgIndex: 0},

	// Glossaries / acronyms.
	`\newglossaryentry`: {Role: RoleGlossaryEntryDefinition, ArgIndex: 0},
	`\gls`:               {Role: RoleGlossaryEntryReference, ArgIndex: 0},
	`\Gls`:               {Role: RoleGlossaryEntryReference, ArgIndex: 0},
	`\glspl`:             {Role: RoleGlossaryEntryReference, ArgIndex: 0},
	`\newacronym`:        {Role: RoleAcronymDefinition, ArgIndex: 0},
	`\DeclareAcronym`:    {Role: RoleAcronymDeclaration, ArgIndex: 0},
	`\acrshort`:          {Role: RoleAcronymReference, ArgIndex: 0},
	`\acrlong`:           {Role: RoleAcronymReference, ArgIndex: 0},
	`\acrfull`:           {Role: RoleAcronymReference, ArgIndex: 0},
	`\ac`:                {Role: RoleAcronymReference, ArgIndex: 0},

	// Colors.
	`\color`:                  {Role: RoleColorReference, ArgIndex: 0},
	`\textcolor`:              {Role: RoleColorReference, ArgIndex: 0},
	`\definecolor`:            {Role: RoleColorDefinition, ArgIndex: 0},
	`\definecolorset`:         {Role: RoleColorSetDefinition, ArgIndex: 0},

	// TikZ.
	`\usetikzlibrary`: {Role: RoleTikzLibraryImport, ArgIndex: 0},

	// Graphics path.
	`\graphicspath`: {Role: RoleGraphicsPath, ArgIndex: 0},

	// Misc.
	`\caption`: {Role: RoleCaption, ArgIndex: 0},
	`\item`:    {Role: RoleEnumItem, ArgIndex: 0},
}

// Lookup classifies name (with leading backslash, "*" already stripped
// by the caller) against Table, returning the zero Entry (RoleGeneric)
// for unrecognised commands.
func Lookup(name string) Entry {
	if e, ok := Table[name]; ok {
		return e
	}
	return Entry{Role: RoleGeneric}
}
