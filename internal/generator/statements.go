package generator

import (
	"fmt"
	"strings"

	"github.com/mekotech/mathscript/internal/ast"
)

func (g *Generator) generateStatement(stmt ast.Statement) string {
	if stmt == nil {
		return ""
	}
	switch node := stmt.(type) {
	case *ast.VarDecl:
		return g.generateVarDecl(node)
	case *ast.FunctionDecl:
		return g.generateFunctionDecl(node)
	case *ast.ClassDecl:
		return g.generateClassDecl(node)
	case *ast.ExprStmt:
		return g.generateExprStatement(node)
	case *ast.IfStatement:
		return g.generateIfStatement(node)
	case *ast.WhileStatement:
		return g.generateWhileStatement(node)
	case *ast.ForStatement:
		return g.generateForStatement(node)
	case *ast.ForOfStatement:
		return g.generateForOfStatement(node)
	case *ast.TryStatement:
		return g.generateTryStatement(node)
	case *ast.ReturnStatement:
		return g.generateReturnStatement(node)
	case *ast.BreakStatement:
		return g.ind() + "break\n"
	case *ast.ContinueStatement:
		return g.ind() + "goto continue\n"
	case *ast.ThrowStatement:
		return g.generateThrowStatement(node)
	case *ast.BlockStatement:
		return g.generateBlockStatementInline(node)
	default:
		return g.ind() + "-- Unhandled node type: " + nodeTypeName(stmt) + "\n"
	}
}

func (g *Generator) generateVarDecl(node *ast.VarDecl) string {
	var out strings.Builder
	for _, d := range node.Declarators {
		out.WriteString(g.ind())
		out.WriteString("local ")
		out.WriteString(g.generatePatternTarget(d.Target))
		if d.Initializer != nil {
			out.WriteString(" = ")
			out.WriteString(g.generateExpression(d.Initializer))
		}
		out.WriteString("\n")
		out.WriteString(g.generateDestructuringBindings(d.Target))
	}
	return out.String()
}

// generatePatternTarget renders the left-hand side of a `local`
// declaration. Destructuring patterns declare a single synthetic local
// holding the source value; generateDestructuringBindings then unpacks
// it into the real bindings on following lines.
func (g *Generator) generatePatternTarget(pat ast.Pattern) string {
	switch p := pat.(type) {
	case *ast.IdentifierPattern:
		return p.Name.LuaName()
	case *ast.ArrayPattern, *ast.ObjectPattern:
		return "__ms_destructure"
	default:
		return "__ms_destructure"
	}
}

func (g *Generator) generateDestructuringBindings(pat ast.Pattern) string {
	var out strings.Builder
	switch p := pat.(type) {
	case *ast.ArrayPattern:
		for i, el := range p.Elements {
			if el == nil {
				continue
			}
			if rest, ok := el.(*ast.RestElement); ok {
				out.WriteString(g.ind())
				out.WriteString(fmt.Sprintf("local %s = _LS.slice(__ms_destructure, %d)\n", rest.Name.LuaName(), i+1))
				continue
			}
			out.WriteString(g.generateDestructuredElement(el, fmt.Sprintf("__ms_destructure[%d]", i+1)))
		}
	case *ast.ObjectPattern:
		for _, prop := range p.Properties {
			if rest, ok := prop.Value.(*ast.RestElement); ok {
				out.WriteString(g.ind())
				out.WriteString(fmt.Sprintf("local %s = __ms_destructure -- rest: full object, minus named keys is unsupported\n", rest.Name.LuaName()))
				continue
			}
			out.WriteString(g.generateDestructuredElement(prop.Value, fmt.Sprintf("__ms_destructure.%s", prop.Key)))
		}
	}
	return out.String()
}

// generateDestructuredElement emits one binding for a single element or
// property pattern, honoring a nested default value.
func (g *Generator) generateDestructuredElement(pat ast.Pattern, source string) string {
	if assign, ok := pat.(*ast.AssignmentPattern); ok {
		name := g.generatePatternTarget(assign.Target)
		def := g.generateExpression(assign.Default)
		return g.ind() + fmt.Sprintf("local %s = %s ~= nil and %s or %s\n", name, source, source, def)
	}
	name := g.generatePatternTarget(pat)
	return g.ind() + fmt.Sprintf("local %s = %s\n", name, source)
}

func (g *Generator) generateFunctionDecl(node *ast.FunctionDecl) string {
	names := make([]string, 0, len(node.Params))
	for _, p := range node.Params {
		names = append(names, p.Name.LuaName())
	}
	var out strings.Builder
	out.WriteString(g.ind())
	out.WriteString(fmt.Sprintf("local function %s(%s)\n", node.Name.Name, strings.Join(names, ", ")))
	g.indented(func() {
		out.WriteString(g.generateParamDefaults(node.Params))
		for _, stmt := range node.Body.Statements {
			out.WriteString(g.generateStatement(stmt))
		}
	})
	out.WriteString(g.ind())
	out.WriteString("end\n")
	return out.String()
}

// generateParamDefaults emits `p = p ~= nil and p or default` lines for
// parameters with a default value, since Lua has no parameter defaults.
func (g *Generator) generateParamDefaults(params []*ast.Parameter) string {
	var out strings.Builder
	for _, p := range params {
		if p.DefaultValue == nil {
			continue
		}
		name := p.Name.LuaName()
		out.WriteString(g.ind())
		out.WriteString(fmt.Sprintf("%s = %s ~= nil and %s or %s\n", name, name, name, g.generateExpression(p.DefaultValue)))
	}
	return out.String()
}

func (g *Generator) generateExprStatement(node *ast.ExprStmt) string {
	switch e := node.Expression.(type) {
	case *ast.AssignExpression:
		return g.generateAssignStatement(e)
	case *ast.UpdateExpression:
		return g.generateUpdateStatement(e)
	default:
		return g.ind() + g.generateExpression(node.Expression) + "\n"
	}
}

func (g *Generator) generateAssignStatement(node *ast.AssignExpression) string {
	target := g.generateExpression(node.Target)
	return g.ind() + fmt.Sprintf("%s = %s\n", target, g.generateAssignValue(node))
}

func (g *Generator) generateUpdateStatement(node *ast.UpdateExpression) string {
	name := g.generateExpression(node.Operand)
	op := "+"
	if node.Operator == "--" {
		op = "-"
	}
	return g.ind() + fmt.Sprintf("%s = %s %s 1\n", name, name, op)
}

func (g *Generator) generateIfStatement(node *ast.IfStatement) string {
	var out strings.Builder
	out.WriteString(g.ind())
	out.WriteString("if ")
	out.WriteString(g.generateExpression(node.Test))
	out.WriteString(" then\n")
	g.indented(func() {
		for _, s := range node.Consequent.Statements {
			out.WriteString(g.generateStatement(s))
		}
	})

	switch alt := node.Alternate.(type) {
	case nil:
	case *ast.IfStatement:
		out.WriteString(g.ind())
		out.WriteString("else\n")
		g.indented(func() {
			out.WriteString(g.generateIfStatement(alt))
		})
	case *ast.BlockStatement:
		out.WriteString(g.ind())
		out.WriteString("else\n")
		g.indented(func() {
			for _, s := range alt.Statements {
				out.WriteString(g.generateStatement(s))
			}
		})
	}

	out.WriteString(g.ind())
	out.WriteString("end\n")
	return out.String()
}

func (g *Generator) generateWhileStatement(node *ast.WhileStatement) string {
	var out strings.Builder
	out.WriteString(g.ind())
	out.WriteString("while ")
	out.WriteString(g.generateExpression(node.Test))
	out.WriteString(" do\n")
	g.indented(func() {
		for _, s := range node.Body.Statements {
			out.WriteString(g.generateStatement(s))
		}
		out.WriteString(g.ind())
		out.WriteString("::continue::\n")
	})
	out.WriteString(g.ind())
	out.WriteString("end\n")
	return out.String()
}

// generateForStatement lowers a C-style `for (init; test; update)` into
// a `do ... while ... end` block: Lua's numeric `for` only covers the
// simple counting case, so the general form is expressed with while.
func (g *Generator) generateForStatement(node *ast.ForStatement) string {
	var out strings.Builder
	out.WriteString(g.ind())
	out.WriteString("do\n")
	g.indented(func() {
		if node.Init != nil {
			out.WriteString(g.generateStatement(node.Init))
		}
		out.WriteString(g.ind())
		out.WriteString("while ")
		if node.Test != nil {
			out.WriteString(g.generateExpression(node.Test))
		} else {
			out.WriteString("true")
		}
		out.WriteString(" do\n")
		g.indented(func() {
			for _, s := range node.Body.Statements {
				out.WriteString(g.generateStatement(s))
			}
			out.WriteString(g.ind())
			out.WriteString("::continue::\n")
			if node.Update != nil {
				out.WriteString(g.generateUpdateClause(node.Update))
			}
		})
		out.WriteString(g.ind())
		out.WriteString("end\n")
	})
	out.WriteString(g.ind())
	out.WriteString("end\n")
	return out.String()
}

// generateUpdateClause renders a for-loop's update clause in statement
// position, avoiding the IIFE wrapping generateExpression would use for
// an assignment/update appearing as a value.
func (g *Generator) generateUpdateClause(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.AssignExpression:
		return g.generateAssignStatement(e)
	case *ast.UpdateExpression:
		return g.generateUpdateStatement(e)
	default:
		return g.ind() + g.generateExpression(expr) + "\n"
	}
}

func (g *Generator) generateForOfStatement(node *ast.ForOfStatement) string {
	var out strings.Builder
	out.WriteString(g.ind())
	out.WriteString(fmt.Sprintf("for _, %s in ipairs(%s) do\n", node.Variable.LuaName(), g.generateExpression(node.Iterable)))
	g.indented(func() {
		var body strings.Builder
		for _, s := range node.Body.Statements {
			body.WriteString(g.generateStatement(s))
		}
		out.WriteString(body.String())
		// The label is emitted only when the body contains a `continue`.
		if strings.Contains(body.String(), "goto continue\n") {
			out.WriteString(g.ind())
			out.WriteString("::continue::\n")
		}
	})
	out.WriteString(g.ind())
	out.WriteString("end\n")
	return out.String()
}

// generateTryStatement lowers try/catch/finally to pcall: the block
// becomes an anonymous function invoked through pcall, the error is
// bound to the catch parameter, and any finally block runs
// unconditionally afterward.
func (g *Generator) generateTryStatement(node *ast.TryStatement) string {
	var out strings.Builder
	out.WriteString(g.ind())
	out.WriteString("local __ms_ok, __ms_err = pcall(function()\n")
	g.indented(func() {
		for _, s := range node.Block.Statements {
			out.WriteString(g.generateStatement(s))
		}
	})
	out.WriteString(g.ind())
	out.WriteString("end)\n")

	if node.Catch != nil {
		out.WriteString(g.ind())
		out.WriteString("if not __ms_ok then\n")
		g.indented(func() {
			if node.Catch.Param != nil {
				out.WriteString(g.ind())
				out.WriteString(fmt.Sprintf("local %s = __ms_err\n", node.Catch.Param.LuaName()))
			}
			for _, s := range node.Catch.Body.Statements {
				out.WriteString(g.generateStatement(s))
			}
		})
		out.WriteString(g.ind())
		out.WriteString("end\n")
	}

	if node.Finally != nil {
		for _, s := range node.Finally.Statements {
			out.WriteString(g.generateStatement(s))
		}
	}
	return out.String()
}

func (g *Generator) generateReturnStatement(node *ast.ReturnStatement) string {
	if node.Value == nil {
		return g.ind() + "return\n"
	}
	return g.ind() + "return " + g.generateExpression(node.Value) + "\n"
}

func (g *Generator) generateThrowStatement(node *ast.ThrowStatement) string {
	return g.ind() + "error(" + g.generateExpression(node.Value) + ")\n"
}

func (g *Generator) generateBlockStatementInline(node *ast.BlockStatement) string {
	var out strings.Builder
	out.WriteString(g.ind())
	out.WriteString("do\n")
	g.indented(func() {
		for _, s := range node.Statements {
			out.WriteString(g.generateStatement(s))
		}
	})
	out.WriteString(g.ind())
	out.WriteString("end\n")
	return out.String()
}
