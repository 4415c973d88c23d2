package lexer

// mathConstants maps a mathematical Unicode constant to its token type.
// Checked before general identifier/digit classification so these
// glyphs never fall through to ILLEGAL.
var mathConstants = map[rune]TokenType{
	'π': MATH_PI,
	'ℯ': MATH_E,
	'φ': MATH_PHI,
	'∞': MATH_INFINITY,
}

// mathOperators maps a mathematical Unicode operator to its token type.
var mathOperators = map[rune]TokenType{
	'×': TIMES,
	'÷': DIVIDE,
	'−': UMINUS,
	'±': PLUSMINUS,
	'√': SQRT,
	'→': ARROW_R,
	'←': ARROW_L,
	'⇒': DOUBLE_ARROW,
	'↔': IFF,
	'≤': LE,
	'≥': GE,
	'≠': NE,
	'≈': APPROX,
	'∝': PROPTO,
	'∈': ELEMENT_OF,
	'∉': NOT_ELEMENT_OF,
	'⊂': SUBSET,
	'⊃': SUPERSET,
	'∪': UNION,
	'∩': INTERSECT,
	'∘': COMPOSE,
	'⊙': ODOT,
	'λ': LAMBDA,
	'∅': EMPTYSET,
	'∑': SUM,
	'∏': PRODUCT,
	'∫': INTEGRAL,
	'∂': PARTIAL,
	'∇': NABLA,
	'Δ': DELTA,
}

// superscriptDigits maps ⁰-⁹ to their ASCII digit value.
var superscriptDigits = map[rune]byte{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

// subscriptDigits maps ₀-₉ to their ASCII digit value.
var subscriptDigits = map[rune]byte{
	'₀': '0', '₁': '1', '₂': '2', '₃': '3', '₄': '4',
	'₅': '5', '₆': '6', '₇': '7', '₈': '8', '₉': '9',
}

func isMathConstant(r rune) bool {
	_, ok := mathConstants[r]
	return ok
}

func isMathOperator(r rune) bool {
	_, ok := mathOperators[r]
	return ok
}

func isSuperscriptDigit(r rune) bool {
	_, ok := superscriptDigits[r]
	return ok
}

func isSubscriptDigit(r rune) bool {
	_, ok := subscriptDigits[r]
	return ok
}
