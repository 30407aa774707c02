package languageServer

import (
	"context"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/Hack-Assembler/util"
)

var (
	documentMap   = make(map[string]TextDocumentItem) // map from uri to document
	documentMutex sync.Mutex
)

func getDocument(uri DocumentUri) (TextDocumentItem, bool) {
	documentMutex.Lock()
	defer documentMutex.Unlock()
	doc, ok := documentMap[string(uri)]
	return doc, ok
}

func putDocument(doc TextDocumentItem) {
	documentMutex.Lock()
	defer documentMutex.Unlock()
	documentMap[string(doc.URI)] = doc
}

func assembleAndReportDiagnostics(uri DocumentUri) []assembler.Diagnostic {
	doc, _ := getDocument(uri)

	assembledRes := assembler.Assemble(doc.Text)
	if assembledRes.Diagnostics == nil {
		assembledRes.Diagnostics = make([]assembler.Diagnostic, 0)
	}
	doc.lastAssembledResult = assembledRes
	putDocument(doc)
	return assembledRes.Diagnostics
}

func documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	putDocument(decodedParams.TextDocument)

	diagnostics := assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     decodedParams.TextDocument.Version,
		Diagnostics: diagnostics,
	})
}

func documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	documentMutex.Lock()
	delete(documentMap, string(decodedParams.TextDocument.URI))
	documentMutex.Unlock()
}

func documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) || len(decodedParams.ContentChanges) == 0 {
		return
	}

	doc, _ := getDocument(decodedParams.TextDocument.URI)
	doc.URI = decodedParams.TextDocument.URI
	doc.Text = decodedParams.ContentChanges[len(decodedParams.ContentChanges)-1].Text
	doc.Version = decodedParams.TextDocument.Version
	putDocument(doc)

	diagnostics := assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

func documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	diagnostics := assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

// reformatDocument puts labels in the first column and indents every
// instruction. Whitespace inside an instruction is removed and trailing
// comments are kept.
func reformatDocument(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		code, comment := line, ""
		if idx := strings.Index(line, "//"); idx != -1 {
			code, comment = line[:idx], line[idx:]
		}
		code = strings.Join(strings.Fields(code), "")

		switch {
		case code == "":
			lines[i] = comment
		case strings.HasPrefix(code, "("):
			lines[i] = code
		default:
			lines[i] = "    " + code
		}
		if code != "" && comment != "" {
			lines[i] += " " + comment
		}
	}
	return strings.Join(lines, "\n")
}

func documentWillSaveWaitUntil(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	doc, _ := getDocument(decodedParams.TextDocument.URI)
	lines := strings.Split(doc.Text, "\n")

	edits := make([]TextEdit, 0)
	edits = append(edits, TextEdit{
		Range: assembler.TextRange{
			Start: assembler.TextPosition{Line: 0, Char: 0},
			End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
		},
		NewText: reformatDocument(doc.Text),
	})

	conn.Reply(context.Background(), req.ID, edits)
	util.LogF("Hack Language Server: reformatted document")
}
