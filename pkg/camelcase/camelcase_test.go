package camelcase

import (
	"fmt"
	"testing"

	testingx "github.com/octohelm/x/testing"
)

func ExampleUpperCamelCase() {
	s := "vimRPCPluginS3"
	fmt.Println(UpperCamelCase(s))
	fmt.Println(LowerCamelCase(s))
	fmt.Println(LowerSnakeCase(s))
	fmt.Println(UpperCamelCase("user_id"))
	// Output:
	// VimRpcPluginS3
	// vimRpcPluginS3
	// vim_rpc_plugin_s3
	// UserID
}

func TestSplit(t *testing.T) {
	for _, c := range [][]string{
		{""},
		{"S3", "S3"},
		{"lowercase", "lowercase"},
		{"Class", "Class"},
		{"MyClass", "My", "Class"},
		{"MyC", "My", "C"},
		{"HTML", "HTML"},
		{"PDFLoader", "PDF", "Loader"},
		{"AString", "A", "String"},
		{"SimpleXMLParser", "Simple", "XML", "Parser"},
		{"vimRPCPlugin", "vim", "RPC", "Plugin"},
		{"GL11Version", "GL11", "Version"},
		{"99Bottles", "99", "Bottles"},
		{"BFG9000", "BFG9000"},
		{"BöseÜberraschung", "Böse", "Überraschung"},
		{"Two  spaces", "Two", "  ", "spaces"},
		{"BadUTF8\xe2\xe2\xa1", "BadUTF8\xe2\xe2\xa1"},
	} {
		t.Run(c[0], func(t *testing.T) {
			testingx.Expect(t, Split(c[0]), testingx.Equal(c[1:]))
		})
	}
}

func TestMethodNames(t *testing.T) {
	testingx.Expect(t, UpperCamelCase("x"), testingx.Be("X"))
	testingx.Expect(t, UpperCamelCase("build"), testingx.Be("Build"))
	testingx.Expect(t, LowerCamelCase("Label"), testingx.Be("label"))
	testingx.Expect(t, LowerCamelCase("created_at"), testingx.Be("createdAt"))
}
