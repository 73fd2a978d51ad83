package internalcheck

import (
	"go/ast"
	"go/types"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/pcacs/rsalab-go"

func load(t *testing.T, patterns ...string) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	return pkgs
}

// calledObject resolves the function or method a call expression invokes.
func calledObject(info *types.Info, call *ast.CallExpr) types.Object {
	switch fn := call.Fun.(type) {
	case *ast.SelectorExpr:
		return info.Uses[fn.Sel]
	case *ast.Ident:
		return info.Uses[fn]
	}
	return nil
}
