package generator

import (
	"fmt"
	"strings"

	"github.com/mekotech/mathscript/internal/ast"
)

// generateClassDecl lowers a class to the table + metatable convention:
// a shared method table `C`, `C.__index = C`, `C.new(...)` building the
// instance via setmetatable, and `C:method(...)` for each instance
// method. A superclass is wired through `setmetatable(C, {__index = Super})`
// so unresolved lookups fall through to the parent's method table.
func (g *Generator) generateClassDecl(node *ast.ClassDecl) string {
	name := node.Name.Name
	var out strings.Builder

	out.WriteString(g.ind())
	out.WriteString(fmt.Sprintf("local %s = {}\n", name))
	if node.Superclass != nil {
		out.WriteString(g.ind())
		out.WriteString(fmt.Sprintf("setmetatable(%s, {__index = %s})\n", name, node.Superclass.Name))
	}
	out.WriteString(g.ind())
	out.WriteString(fmt.Sprintf("%s.__index = %s\n\n", name, name))

	var constructor *ast.MethodDef
	var methods []*ast.MethodDef
	for _, m := range node.Members {
		if m.Kind == ast.MethodConstructor {
			constructor = m
			continue
		}
		methods = append(methods, m)
	}

	out.WriteString(g.generateConstructor(name, node, constructor))

	for _, m := range methods {
		out.WriteString(g.generateMethod(name, m))
	}

	return out.String()
}

func (g *Generator) generateConstructor(className string, class *ast.ClassDecl, ctor *ast.MethodDef) string {
	var out strings.Builder
	var params []*ast.Parameter
	if ctor != nil {
		params = ctor.Params
	}
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name.LuaName())
	}

	out.WriteString(g.ind())
	out.WriteString(fmt.Sprintf("function %s.new(%s)\n", className, strings.Join(names, ", ")))
	g.indented(func() {
		out.WriteString(g.ind())
		out.WriteString(fmt.Sprintf("local self = setmetatable({}, %s)\n", className))
		if ctor != nil {
			out.WriteString(g.generateParamDefaults(ctor.Params))
			for _, stmt := range ctor.Body.Statements {
				out.WriteString(g.generateStatement(stmt))
			}
		}
		out.WriteString(g.ind())
		out.WriteString("return self\n")
	})
	out.WriteString(g.ind())
	out.WriteString("end\n\n")
	return out.String()
}

func (g *Generator) generateMethod(className string, m *ast.MethodDef) string {
	names := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		names = append(names, p.Name.LuaName())
	}

	sep := ":"
	if m.Static {
		sep = "."
	}

	methodName := m.Name.Name
	if m.Kind == ast.MethodGetter {
		methodName = "get_" + methodName
	} else if m.Kind == ast.MethodSetter {
		methodName = "set_" + methodName
	}

	var out strings.Builder
	out.WriteString(g.ind())
	out.WriteString(fmt.Sprintf("function %s%s%s(%s)\n", className, sep, methodName, strings.Join(names, ", ")))
	g.indented(func() {
		out.WriteString(g.generateParamDefaults(m.Params))
		for _, stmt := range m.Body.Statements {
			out.WriteString(g.generateStatement(stmt))
		}
	})
	out.WriteString(g.ind())
	out.WriteString("end\n\n")
	return out.String()
}
