package emulator_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/emulator"
)

func TestStandaloneRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Fill.asm")
	source := "@SCREEN\nM=-1\n@7\nD=A\n@R3\nM=D\n(END)\n@END\n0;JMP\n"
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(emulator.NewStandaloneHandler(path, 1000))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Could not connect: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"type": "run"}); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var display []byte
	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Expected a state message, got %v", err)
		}
		message := map[string]interface{}{}
		if err := json.Unmarshal(b, &message); err != nil {
			t.Fatal(err)
		}

		if message["type"] == "display" {
			display, _ = base64.StdEncoding.DecodeString(message["data"].(string))
		}
		if message["type"] == "state" {
			if message["halted"] != true {
				t.Errorf("Expected the program to halt, got %v", message)
			}
			ram := message["ram"].([]interface{})
			if ram[3].(float64) != 7 {
				t.Errorf("Expected RAM[3] to be 7, got %v", ram[3])
			}
			break
		}
	}

	if len(display) != emulator.ScreenWords*2 || display[0] != 0xFF || display[1] != 0xFF || display[2] != 0 {
		t.Errorf("Expected the first screen word to be set")
	}
}

func TestStandaloneReportsAssemblyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bad.asm")
	if err := os.WriteFile(path, []byte("D=X\n"), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(emulator.NewStandaloneHandler(path, 1000))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Could not connect: %v", err)
	}
	defer conn.Close()

	conn.WriteJSON(map[string]string{"type": "run"})
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	message := struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{}
	if err := conn.ReadJSON(&message); err != nil {
		t.Fatal(err)
	}
	if message.Type != "console" || !strings.Contains(message.Text, "Unknown comp mnemonic") {
		t.Errorf("Expected the assembly error on the console, got %+v", message)
	}
}
