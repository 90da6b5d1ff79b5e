package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symtrace/lintric/analyzer"
)

const rustSnippet = `fn greet(name: &str) -> String {
    format!("hello {}", name)
}

fn main() {
    let message = greet("world");
    println!("{}", message);
}
`

func TestAnalyzeRustFileProducesDependenciesAndMetrics(t *testing.T) {
	a := analyzer.New(analyzer.WithVersion("test"))

	result, err := a.Analyze(context.Background(), "greeter.rs", []byte(rustSnippet))
	require.NoError(t, err)

	require.NotEmpty(t, result.IR.Definitions, "expected at least the greet/main definitions")

	var sawGreetCall bool
	for _, d := range result.IR.Dependencies {
		if d.Symbol == "greet" {
			sawGreetCall = true
			require.Equal(t, 1, d.TargetLine, "greet() is declared on line 1")
			require.Equal(t, 6, d.SourceLine, "greet(\"world\") is called on line 6")
		}
	}
	require.True(t, sawGreetCall, "expected a dependency edge for the call to greet")

	require.Equal(t, "test", result.IR.AnalysisMetadata.LintricVersion)
	require.NotZero(t, result.IR.AnalysisMetadata.TotalLines)
}

func TestAnalyzeRejectsUnsupportedExtension(t *testing.T) {
	a := analyzer.New()
	_, err := a.Analyze(context.Background(), "README.md", []byte("# hello"))
	require.Error(t, err)
}

const rustShadowingSnippet = `fn f() {
    let x = 1;
    let x = x + 1;
    x;
}
`

func TestAnalyzeRustShadowingResolvesToNearestVisibleDefinition(t *testing.T) {
	a := analyzer.New()

	result, err := a.Analyze(context.Background(), "shadow.rs", []byte(rustShadowingSnippet))
	require.NoError(t, err)

	var rhsTarget, bareTarget int
	for _, d := range result.IR.Dependencies {
		if d.Symbol != "x" {
			continue
		}
		switch d.SourceLine {
		case 3:
			rhsTarget = d.TargetLine
		case 4:
			bareTarget = d.TargetLine
		}
	}
	require.Equal(t, 2, rhsTarget, "the second let's RHS x should resolve to the first x")
	require.Equal(t, 3, bareTarget, "the bare x; should resolve to the second (shadowing) x")
}

const rustMethodSnippet = `struct Calculator {}

impl Calculator {
    fn add(&mut self, n: i32) {}
}

fn main() {
    let calc = Calculator {};
    calc.add(5);
}
`

func TestAnalyzeRustMethodCallResolvesThroughImplBlock(t *testing.T) {
	a := analyzer.New()

	result, err := a.Analyze(context.Background(), "calc.rs", []byte(rustMethodSnippet))
	require.NoError(t, err)

	var sawAddCall bool
	for _, d := range result.IR.Dependencies {
		if d.Symbol == "add" && d.DependencyType == "FunctionCall" {
			sawAddCall = true
			require.Equal(t, 4, d.TargetLine, "add is declared on line 4")
		}
	}
	require.True(t, sawAddCall, "expected calc.add(5) to resolve to the impl block's add method")
}

const rustImportAliasSnippet = `use my_module::MyStruct as MS;

fn f() {
    let s = MS;
}
`

func TestAnalyzeRustImportAliasResolvesToImportDefinition(t *testing.T) {
	a := analyzer.New()

	result, err := a.Analyze(context.Background(), "alias.rs", []byte(rustImportAliasSnippet))
	require.NoError(t, err)

	var sawMSReference bool
	for _, d := range result.IR.Dependencies {
		if d.Symbol == "MS" {
			sawMSReference = true
			require.Equal(t, 1, d.TargetLine, "MS the alias is introduced on line 1")
		}
	}
	require.True(t, sawMSReference, "expected MS to resolve to its use ... as alias")
}
