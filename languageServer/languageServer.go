package languageServer

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"os"

	"github.com/golang/glog"
	"github.com/sourcegraph/jsonrpc2"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/util"
)

const LanguageID = "hack"

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// NewConn serves the language server protocol on rwc.
func NewConn(ctx context.Context, rwc io.ReadWriteCloser) *jsonrpc2.Conn {
	return jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}), handler{})
}

func ListenAndServe() {
	// using stdin and stdout
	<-NewConn(context.Background(), stdrwc{}).DisconnectNotify()
}

// ListenAndServeTCP accepts editor connections on addr so the server can be
// debugged remotely.
func ListenAndServeTCP(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer lis.Close()

	glog.Infof("Hack Language Server: listening for TCP connections on %s", addr)

	connectionCount := 0
	for {
		conn, err := lis.Accept()
		if err != nil {
			return err
		}
		connectionCount = connectionCount + 1
		connectionID := connectionCount
		glog.Infof("Hack Language Server: received incoming connection #%d", connectionID)
		jsonrpc2Connection := NewConn(context.Background(), conn)
		go func() {
			<-jsonrpc2Connection.DisconnectNotify()
			glog.Infof("Hack Language Server: connection #%d closed", connectionID)
		}()
	}
}

type handler struct{}

func (h handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	util.LogF("Hack Language Server: received request: %s", req.Method)
	switch req.Method {
	case "textDocument/didOpen":
		documentOpenNotification(conn, req)
	case "textDocument/didClose":
		documentCloseNotification(conn, req)
	case "textDocument/didChange":
		documentChangeNotification(conn, req)
	case "initialize":
		handleInitialize(conn, req)
	case "initialized":
		// nothing to do
	case "textDocument/diagnostic":
		documentDiagnostics(conn, req)
	case "textDocument/willSaveWaitUntil":
		documentWillSaveWaitUntil(conn, req)
	case "textDocument/hover":
		hoverRequest(conn, req)

	// quitting
	case "shutdown":
		conn.Reply(context.Background(), req.ID, nil)
	case "exit":
		conn.Close()
	default:
		if !req.Notif {
			conn.ReplyWithError(context.Background(), req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeMethodNotFound,
				Message: "method not supported: " + req.Method,
			})
		}
	}
}

// decodeParams unmarshals the request parameters, replying with an error to
// calls that carry invalid parameters.
func decodeParams(conn *jsonrpc2.Conn, req *jsonrpc2.Request, v interface{}) bool {
	if req.Params != nil && json.Unmarshal(*req.Params, v) == nil {
		return true
	}
	if !req.Notif {
		conn.ReplyWithError(context.Background(), req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidParams,
			Message: "invalid parameters",
		})
	}
	return false
}

func handleInitialize(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := InitializeParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: TextDocumentSyncFull,
			HoverProvider:    true,
			DiagnosticProvider: &DiagnosticOptions{
				Identifier: LanguageID,
			},
		},
		ServerInfo: &ServerInfo{Name: "hackasm"},
	}
	conn.Reply(context.Background(), req.ID, result)

	registerRemainingCapabilities(conn)
}

func registerRemainingCapabilities(conn *jsonrpc2.Conn) {
	// textDocumentSync.willSaveWaitUntil is registered dynamically
	util.LogF("Hack Language Server: registering remaining capabilities")
	params := RegistrationParams{
		Registrations: []Registration{
			{
				ID:     "textDocumentSync.willSaveWaitUntil",
				Method: "textDocument/willSaveWaitUntil",
				RegisterOptions: TextDocumentRegistrationOptions{
					DocumentSelector: []DocumentFilter{
						{
							Scheme:   "file",
							Language: LanguageID,
						},
					},
				},
			},
		},
	}

	go conn.Call(context.Background(), "client/registerCapability", params, nil)
}
