package script

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
)

type candidate struct {
	// name is the binding the object is assigned to, if any.
	name   string
	object *ast.ObjectLiteral
}

// collector gathers every object literal reachable from top-level code, the
// function and class bodies it defines and every nested statement, in source
// order.
type collector struct {
	candidates []candidate
	// objects maps a declared name to the object literal it is initialized
	// with. The first declaration wins.
	objects map[string]*ast.ObjectLiteral
	file    *file.File
}

func newCollector(f *file.File) *collector {
	return &collector{objects: map[string]*ast.ObjectLiteral{}, file: f}
}

// text returns the source of n, or "?" when it cannot be located.
func (c *collector) text(n ast.Node) string {
	if c.file == nil {
		return "?"
	}
	src := c.file.Source()
	start, end := int(n.Idx0())-c.file.Base(), int(n.Idx1())-c.file.Base()
	if start < 0 || end > len(src) || start >= end {
		return "?"
	}
	return src[start:end]
}

func (c *collector) statements(list []ast.Statement) {
	for _, st := range list {
		c.statement(st)
	}
}

func (c *collector) statement(st ast.Statement) {
	switch n := st.(type) {
	case *ast.VariableStatement:
		c.bindings(n.List)
	case *ast.LexicalDeclaration:
		c.bindings(n.List)
	case *ast.ExpressionStatement:
		c.expression("", n.Expression)
	case *ast.BlockStatement:
		c.block(n)
	case *ast.FunctionDeclaration:
		c.function(n.Function)
	case *ast.ClassDeclaration:
		c.class(n.Class)
	case *ast.IfStatement:
		c.statement(n.Consequent)
		if n.Alternate != nil {
			c.statement(n.Alternate)
		}
	case *ast.ReturnStatement:
		if n.Argument != nil {
			c.expression("", n.Argument)
		}
	case *ast.TryStatement:
		c.block(n.Body)
		if n.Catch != nil {
			c.block(n.Catch.Body)
		}
		c.block(n.Finally)
	case *ast.ForStatement:
		c.forInitializer(n.Initializer)
		c.statement(n.Body)
	case *ast.ForInStatement:
		c.statement(n.Body)
	case *ast.ForOfStatement:
		c.statement(n.Body)
	case *ast.WhileStatement:
		c.statement(n.Body)
	case *ast.DoWhileStatement:
		c.statement(n.Body)
	case *ast.WithStatement:
		c.statement(n.Body)
	case *ast.SwitchStatement:
		for _, clause := range n.Body {
			c.statements(clause.Consequent)
		}
	case *ast.LabelledStatement:
		c.statement(n.Statement)
	}
}

func (c *collector) block(b *ast.BlockStatement) {
	if b != nil {
		c.statements(b.List)
	}
}

func (c *collector) forInitializer(init ast.ForLoopInitializer) {
	switch n := init.(type) {
	case *ast.ForLoopInitializerVarDeclList:
		c.bindings(n.List)
	case *ast.ForLoopInitializerLexicalDecl:
		c.bindings(n.LexicalDeclaration.List)
	case *ast.ForLoopInitializerExpression:
		c.expression("", n.Expression)
	}
}

func (c *collector) bindings(list []*ast.Binding) {
	for _, b := range list {
		if b.Initializer == nil {
			continue
		}
		name := ""
		if id, ok := b.Target.(*ast.Identifier); ok {
			name = id.Name.String()
			if obj, ok := b.Initializer.(*ast.ObjectLiteral); ok {
				if _, dup := c.objects[name]; !dup {
					c.objects[name] = obj
				}
			}
		}
		c.expression(name, b.Initializer)
	}
}

func (c *collector) function(fn *ast.FunctionLiteral) {
	if fn != nil {
		c.block(fn.Body)
	}
}

// class walks field initializers (named by their key), method bodies and
// static blocks.
func (c *collector) class(cl *ast.ClassLiteral) {
	if cl == nil {
		return
	}
	for _, el := range cl.Body {
		switch n := el.(type) {
		case *ast.FieldDefinition:
			if n.Initializer == nil {
				continue
			}
			name := ""
			if !n.Computed {
				name, _ = literalKey(n.Key)
			}
			c.expression(name, n.Initializer)
		case *ast.MethodDefinition:
			c.function(n.Body)
		case *ast.ClassStaticBlock:
			c.block(n.Block)
		}
	}
}

func (c *collector) expression(name string, e ast.Expression) {
	switch n := e.(type) {
	case *ast.ObjectLiteral:
		c.candidates = append(c.candidates, candidate{name: name, object: n})
		for _, p := range n.Value {
			kv, ok := p.(*ast.PropertyKeyed)
			if !ok {
				continue
			}
			key, _ := propertyKey(kv)
			c.expression(key, kv.Value)
		}
	case *ast.AssignExpression:
		c.expression(targetName(n.Left), n.Right)
	case *ast.SequenceExpression:
		for _, item := range n.Sequence {
			c.expression("", item)
		}
	case *ast.CallExpression:
		c.expression("", n.Callee)
		for _, arg := range n.ArgumentList {
			c.expression("", arg)
		}
	case *ast.NewExpression:
		c.expression("", n.Callee)
		for _, arg := range n.ArgumentList {
			c.expression("", arg)
		}
	case *ast.FunctionLiteral:
		c.function(n)
	case *ast.ClassLiteral:
		c.class(n)
	case *ast.ArrowFunctionLiteral:
		switch body := n.Body.(type) {
		case *ast.BlockStatement:
			c.statements(body.List)
		case *ast.ExpressionBody:
			c.expression("", body.Expression)
		}
	}
}

// targetName names the left side of an assignment: translations,
// window.translations and window["translations"] all yield "translations".
func targetName(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name.String()
	case *ast.DotExpression:
		return n.Identifier.Name.String()
	case *ast.BracketExpression:
		if s, ok := n.Member.(*ast.StringLiteral); ok {
			return s.Value.String()
		}
	}
	return ""
}
