package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symtrace/lintric/analyzer"
)

const typescriptSnippet = `function greet(name: string): string {
  return "hello " + name;
}

function main(): void {
  const message = greet("world");
  console.log(message);
}
`

func TestAnalyzeTypeScriptFileProducesDependencies(t *testing.T) {
	a := analyzer.New()

	result, err := a.Analyze(context.Background(), "greeter.ts", []byte(typescriptSnippet))
	require.NoError(t, err)
	require.NotEmpty(t, result.IR.Definitions)

	var sawGreetCall bool
	for _, d := range result.IR.Dependencies {
		if d.Symbol == "greet" {
			sawGreetCall = true
			require.Equal(t, 1, d.TargetLine)
		}
	}
	require.True(t, sawGreetCall, "expected a dependency edge for the call to greet")
}

const tsxSnippet = `function Greeting(): JSX.Element {
  return <div>hi</div>;
}

function App(): JSX.Element {
  return <Greeting />;
}
`

const typescriptClassMethodSnippet = `class C {
  m() {}
}

const c = new C();
c.m();
`

func TestAnalyzeTypeScriptClassMethodResolvesThroughClassDeclaration(t *testing.T) {
	a := analyzer.New()

	result, err := a.Analyze(context.Background(), "c.ts", []byte(typescriptClassMethodSnippet))
	require.NoError(t, err)

	var sawMethodCall, sawClassReference bool
	for _, d := range result.IR.Dependencies {
		switch {
		case d.Symbol == "m" && d.DependencyType == "FunctionCall":
			sawMethodCall = true
			require.Equal(t, 2, d.TargetLine, "m is declared on line 2")
		case d.Symbol == "C" && d.DependencyType == "TypeReference":
			sawClassReference = true
			require.Equal(t, 1, d.TargetLine, "C is declared on line 1")
		}
	}
	require.True(t, sawMethodCall, "expected c.m() to resolve to the class's m method")
	require.True(t, sawClassReference, "expected new C() to produce a TypeReference edge to the class")
}

func TestAnalyzeTSXFileTracksComponentReferences(t *testing.T) {
	a := analyzer.New()

	result, err := a.Analyze(context.Background(), "App.tsx", []byte(tsxSnippet))
	require.NoError(t, err)

	var sawGreetingReference bool
	for _, d := range result.IR.Dependencies {
		if d.Symbol == "Greeting" {
			sawGreetingReference = true
			require.Equal(t, 1, d.TargetLine)
		}
	}
	require.True(t, sawGreetingReference, "expected a dependency edge for the <Greeting /> reference")
}
