package generator

import (
	"fmt"
	"strings"

	"github.com/mekotech/mathscript/internal/ast"
	"github.com/mekotech/mathscript/internal/lexer"
)

// arrayMethods lists the built-in array method names that lower to a
// call into the runtime helper table (`_LS.push(arr, x)`) instead of
// Lua's colon method-call syntax, since Lua tables have no methods of
// their own.
var arrayMethods = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true,
	"slice": true, "splice": true, "map": true, "filter": true,
	"reduce": true, "forEach": true, "includes": true, "indexOf": true,
	"join": true, "concat": true, "reverse": true, "sort": true,
	"find": true, "some": true, "every": true, "flat": true,
}

// mathConstantNames gives the Lua expression for each MathConstant kind.
var mathConstantNames = map[lexer.TokenType]string{
	lexer.MATH_PI:       "math.pi",
	lexer.MATH_E:        "math.exp(1)",
	lexer.MATH_PHI:      "((1 + math.sqrt(5)) / 2)",
	lexer.MATH_INFINITY: "math.huge",
}

// mathMemberNames maps known `Math.*` members to their Lua `math`
// library names; members not listed keep their name unchanged.
var mathMemberNames = map[string]string{
	"PI":      "pi",
	"abs":     "abs",
	"floor":   "floor",
	"ceil":    "ceil",
	"round":   "floor", // a Math.round(x) call gets +0.5 added at the call site
	"max":     "max",
	"min":     "min",
	"pow":     "pow",
	"sqrt":    "sqrt",
	"random":  "random",
	"log":     "log",
	"exp":     "exp",
	"sin":     "sin",
	"cos":     "cos",
	"tan":     "tan",
}

func (g *Generator) generateExpression(expr ast.Expression) string {
	if expr == nil {
		return "nil"
	}
	switch node := expr.(type) {
	case *ast.Identifier:
		return node.LuaName()
	case *ast.NumberLiteral:
		return node.Value
	case *ast.StringLiteral:
		return luaQuote(node.Value)
	case *ast.BoolLiteral:
		if node.Value {
			return "true"
		}
		return "false"
	case *ast.NullLiteral:
		return "nil"
	case *ast.MathConstant:
		if s, ok := mathConstantNames[node.Kind]; ok {
			return s
		}
		return "nil"
	case *ast.ArrayLiteral:
		return g.generateArrayLiteral(node)
	case *ast.ObjectLiteral:
		return g.generateObjectLiteral(node)
	case *ast.TemplateLiteral:
		return g.generateTemplateLiteral(node)
	case *ast.MemberExpression:
		return g.generateMemberExpression(node)
	case *ast.CallExpression:
		return g.generateCallExpression(node)
	case *ast.NewExpression:
		return g.generateNewExpression(node)
	case *ast.AssignExpression:
		return g.generateAssignAsExpression(node)
	case *ast.BinaryExpression:
		return g.generateBinaryExpression(node)
	case *ast.UnaryExpression:
		return g.generateUnaryExpression(node)
	case *ast.UpdateExpression:
		return g.generateUpdateAsExpression(node)
	case *ast.ConditionalExpression:
		return g.generateConditionalExpression(node)
	case *ast.ArrowFunction:
		return g.generateArrowFunction(node)
	case *ast.SpreadElement:
		return g.generateExpression(node.Argument)
	default:
		return "-- Unhandled node type: " + nodeTypeName(expr)
	}
}

func luaQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (g *Generator) generateArrayLiteral(node *ast.ArrayLiteral) string {
	parts := make([]string, 0, len(node.Elements))
	for _, el := range node.Elements {
		if el == nil {
			parts = append(parts, "nil")
			continue
		}
		parts = append(parts, g.generateExpression(el))
	}
	return fmt.Sprintf("_LS.array({%s})", strings.Join(parts, ", "))
}

func (g *Generator) generateObjectLiteral(node *ast.ObjectLiteral) string {
	var parts []string
	for _, prop := range node.Properties {
		if prop.IsMethod {
			parts = append(parts, fmt.Sprintf("%s = %s", prop.KeyName, g.generateFunctionLiteral(prop.MethodParams, prop.MethodBody)))
			continue
		}
		var key string
		switch {
		case prop.Computed:
			key = "[" + g.generateExpression(prop.KeyExpr) + "]"
		case isValidLuaIdent(prop.KeyName):
			key = prop.KeyName
		default:
			key = "[" + luaQuote(prop.KeyName) + "]"
		}
		parts = append(parts, fmt.Sprintf("%s = %s", key, g.generateExpression(prop.Value)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func isValidLuaIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

// generateTemplateLiteral lowers `a${x}b${y}c` to
// string.format("a%sb%sc", tostring(x), tostring(y)).
func (g *Generator) generateTemplateLiteral(node *ast.TemplateLiteral) string {
	if len(node.Exprs) == 0 {
		return luaQuote(node.Strings[0])
	}
	var format strings.Builder
	for _, s := range node.Strings {
		format.WriteString(strings.ReplaceAll(s, "%", "%%"))
		format.WriteString("%s")
	}
	// One literal chunk too many was appended above; trim the final "%s".
	formatted := strings.TrimSuffix(format.String(), "%s")

	args := make([]string, len(node.Exprs))
	for i, e := range node.Exprs {
		args[i] = fmt.Sprintf("tostring(%s)", g.generateExpression(e))
	}
	return fmt.Sprintf("string.format(%s, %s)", luaQuote(formatted), strings.Join(args, ", "))
}

func (g *Generator) generateMemberExpression(node *ast.MemberExpression) string {
	obj := g.generateExpression(node.Object)
	if ident, ok := node.Object.(*ast.Identifier); ok && ident.Name == "Math" {
		if prop, ok := node.Property.(*ast.Identifier); ok {
			if luaName, ok := mathMemberNames[prop.Name]; ok {
				return "math." + luaName
			}
			return "math." + prop.Name
		}
	}
	if node.Computed {
		return fmt.Sprintf("%s[%s]", obj, g.generateExpression(node.Property))
	}
	prop := node.Property.(*ast.Identifier)
	return fmt.Sprintf("%s.%s", obj, prop.LuaName())
}

func (g *Generator) generateCallExpression(node *ast.CallExpression) string {
	args := make([]string, len(node.Args))
	for i, a := range node.Args {
		args[i] = g.generateExpression(a)
	}
	argStr := strings.Join(args, ", ")

	if member, ok := node.Callee.(*ast.MemberExpression); ok && !member.Computed {
		prop := member.Property.(*ast.Identifier)

		if ident, ok := member.Object.(*ast.Identifier); ok {
			if ident.Name == "console" && prop.Name == "log" {
				return fmt.Sprintf("print(%s)", argStr)
			}
			if ident.Name == "Math" {
				if prop.Name == "round" {
					return fmt.Sprintf("math.floor(%s + 0.5)", argStr)
				}
				if luaName, ok := mathMemberNames[prop.Name]; ok {
					return fmt.Sprintf("math.%s(%s)", luaName, argStr)
				}
				return fmt.Sprintf("math.%s(%s)", prop.Name, argStr)
			}
		}

		if arrayMethods[prop.Name] {
			obj := g.generateExpression(member.Object)
			if argStr == "" {
				return fmt.Sprintf("_LS.%s(%s)", prop.Name, obj)
			}
			return fmt.Sprintf("_LS.%s(%s, %s)", prop.Name, obj, argStr)
		}

		obj := g.generateExpression(member.Object)
		return fmt.Sprintf("%s:%s(%s)", obj, prop.LuaName(), argStr)
	}

	if ident, ok := node.Callee.(*ast.Identifier); ok && g.knownClasses[ident.Name] {
		return fmt.Sprintf("%s.new(%s)", ident.Name, argStr)
	}

	callee := g.generateExpression(node.Callee)
	return fmt.Sprintf("%s(%s)", callee, argStr)
}

func (g *Generator) generateNewExpression(node *ast.NewExpression) string {
	args := make([]string, len(node.Args))
	for i, a := range node.Args {
		args[i] = g.generateExpression(a)
	}
	callee := g.generateExpression(node.Callee)
	return fmt.Sprintf("%s.new(%s)", callee, strings.Join(args, ", "))
}

// generateAssignAsExpression handles an AssignExpression found in a
// nested expression context (not directly as an ExprStmt, which
// statements.go lowers to a plain Lua assignment statement instead).
// Lua has no assignment expression, so this wraps the assignment in an
// immediately invoked function that returns the assigned value.
func (g *Generator) generateAssignAsExpression(node *ast.AssignExpression) string {
	target := g.generateExpression(node.Target)
	value := g.generateAssignValue(node)
	return fmt.Sprintf("(function() %s = %s; return %s end)()", target, value, target)
}

func (g *Generator) generateAssignValue(node *ast.AssignExpression) string {
	target := g.generateExpression(node.Target)
	value := g.generateExpression(node.Value)
	switch node.Operator {
	case "=":
		return value
	case "+=":
		return g.generateAddLike(node.Target, target, node.Value, value)
	case "-=":
		return fmt.Sprintf("%s - %s", target, value)
	case "*=":
		return fmt.Sprintf("%s * %s", target, value)
	case "/=":
		return fmt.Sprintf("%s / %s", target, value)
	default:
		return value
	}
}

func (g *Generator) generateBinaryExpression(node *ast.BinaryExpression) string {
	left := g.generateExpression(node.Left)
	right := g.generateExpression(node.Right)

	switch node.Operator {
	case "+":
		return g.generateAddLike(node.Left, left, node.Right, right)
	case "!=", "≠":
		return fmt.Sprintf("(%s ~= %s)", left, right)
	case "!==":
		return fmt.Sprintf("(%s ~= %s)", left, right)
	case "===":
		return fmt.Sprintf("(%s == %s)", left, right)
	case "&&":
		return fmt.Sprintf("(%s and %s)", left, right)
	case "||":
		return fmt.Sprintf("(%s or %s)", left, right)
	case "×":
		return fmt.Sprintf("(%s * %s)", left, right)
	case "÷":
		return fmt.Sprintf("(%s / %s)", left, right)
	case "≤":
		return fmt.Sprintf("(%s <= %s)", left, right)
	case "≥":
		return fmt.Sprintf("(%s >= %s)", left, right)
	case "**", "^":
		return fmt.Sprintf("(%s ^ %s)", left, right)
	case "%":
		return fmt.Sprintf("(%s %% %s)", left, right)
	default:
		return fmt.Sprintf("(%s %s %s)", left, node.Operator, right)
	}
}

// generateAddLike classifies `+` as string concatenation or numeric
// addition: any operand that is syntactically a string/template
// literal forces concatenation; otherwise it is arithmetic.
func (g *Generator) generateAddLike(leftNode ast.Expression, left string, rightNode ast.Expression, right string) string {
	if isStringlike(leftNode) || isStringlike(rightNode) {
		return fmt.Sprintf("(%s .. %s)", wrapForConcat(leftNode, left), wrapForConcat(rightNode, right))
	}
	return fmt.Sprintf("(%s + %s)", left, right)
}

func isStringlike(n ast.Expression) bool {
	switch n.(type) {
	case *ast.StringLiteral, *ast.TemplateLiteral:
		return true
	default:
		return false
	}
}

// wrapForConcat avoids a redundant tostring() around a value already
// known to be a string.
func wrapForConcat(n ast.Expression, rendered string) string {
	if isStringlike(n) {
		return rendered
	}
	return "tostring(" + rendered + ")"
}

func (g *Generator) generateUnaryExpression(node *ast.UnaryExpression) string {
	operand := g.generateExpression(node.Operand)
	switch node.Operator {
	case "!":
		return fmt.Sprintf("(not %s)", operand)
	case "√":
		return fmt.Sprintf("math.sqrt(%s)", operand)
	case "-", "−":
		return fmt.Sprintf("(-%s)", operand)
	case "+":
		return operand
	default:
		return fmt.Sprintf("(%s%s)", node.Operator, operand)
	}
}

// generateUpdateAsExpression handles `x++`/`++x` used where a value is
// actually needed (not as a bare ExprStmt, which statements.go lowers
// directly to an assignment). Postfix returns the pre-update value.
func (g *Generator) generateUpdateAsExpression(node *ast.UpdateExpression) string {
	name := g.generateExpression(node.Operand)
	op := "+"
	if node.Operator == "--" {
		op = "-"
	}
	if node.Prefix {
		return fmt.Sprintf("(function() %s = %s %s 1; return %s end)()", name, name, op, name)
	}
	return fmt.Sprintf("(function() local __ms_prev = %s; %s = %s %s 1; return __ms_prev end)()", name, name, name, op)
}

// generateConditionalExpression lowers `test ? a : b` to Lua's
// `test and a or b` idiom. This misfires when `a` is itself falsy
// (`false` or `nil`) in Lua, the same corner case the ternary idiom has
// always had; MathScript does not special-case it.
func (g *Generator) generateConditionalExpression(node *ast.ConditionalExpression) string {
	return fmt.Sprintf("(%s and %s or %s)", g.generateExpression(node.Test), g.generateExpression(node.Then), g.generateExpression(node.Else))
}

func (g *Generator) generateArrowFunction(node *ast.ArrowFunction) string {
	return g.generateFunctionLiteralArrow(node)
}

func (g *Generator) generateFunctionLiteralArrow(node *ast.ArrowFunction) string {
	params := make([]string, 0, len(node.Params))
	for _, p := range node.Params {
		params = append(params, p.Name.LuaName())
	}
	var body strings.Builder
	body.WriteString(fmt.Sprintf("function(%s)\n", strings.Join(params, ", ")))
	g.indented(func() {
		if node.Body != nil {
			for _, stmt := range node.Body.Statements {
				body.WriteString(g.generateStatement(stmt))
			}
		} else {
			body.WriteString(g.ind())
			body.WriteString("return ")
			body.WriteString(g.generateExpression(node.Expr))
			body.WriteString("\n")
		}
	})
	body.WriteString(g.ind())
	body.WriteString("end")
	return body.String()
}

func (g *Generator) generateFunctionLiteral(params []*ast.Parameter, block *ast.BlockStatement) string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name.LuaName())
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("function(%s)\n", strings.Join(names, ", ")))
	g.indented(func() {
		for _, stmt := range block.Statements {
			b.WriteString(g.generateStatement(stmt))
		}
	})
	b.WriteString(g.ind())
	b.WriteString("end")
	return b.String()
}
