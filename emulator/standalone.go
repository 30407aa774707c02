package emulator

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/util"
)

type consoleMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type displayMessage struct {
	Type   string `json:"type"`
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type stateMessage struct {
	Type   string `json:"type"`
	A      uint16 `json:"a"`
	D      uint16 `json:"d"`
	PC     uint16 `json:"pc"`
	Cycles uint64 `json:"cycles"`
	Halted bool   `json:"halted"`
	RAM    []int  `json:"ram"` // RAM[0..15]
}

type clientMessage struct {
	Type string `json:"type"`
	Key  uint16 `json:"key"`
}

// session is one browser connection. Writes to the websocket are serialized
// through wsMutex since the display watcher writes concurrently.
type session struct {
	programPath  string
	runtimeLimit uint64
	conn         *websocket.Conn
	wsMutex      sync.Mutex
	emMutex      sync.Mutex
	emInst       *EmulatorInstance
}

func (s *session) send(v interface{}) {
	messageBytes, e := json.Marshal(v)
	if e != nil {
		glog.Errorf("Could not marshal message: %v", e)
		return
	}

	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()
	if e := s.conn.WriteMessage(websocket.TextMessage, messageBytes); e != nil {
		util.LogF("Hack emulator: write failed: %v", e)
	}
}

func (s *session) sendDisplay(display *VirtualDisplay) {
	s.send(displayMessage{
		Type:   "display",
		Data:   base64.StdEncoding.EncodeToString(display.Bytes()),
		Width:  ScreenWidth,
		Height: ScreenHeight,
	})
}

func (s *session) emulator() *EmulatorInstance {
	s.emMutex.Lock()
	defer s.emMutex.Unlock()
	return s.emInst
}

func (s *session) run() {
	program, e := LoadProgramFile(s.programPath)
	if e != nil {
		s.send(consoleMessage{Type: "console", Text: fmt.Sprintf("Could not load %s:\n%v\n", s.programPath, e)})
		return
	}

	emulator := NewEmulator(EmulatorConfig{
		Program:      program,
		RuntimeLimit: s.runtimeLimit,
		RuntimeErrorCallback: func(e RuntimeException) {
			s.send(consoleMessage{Type: "console", Text: fmt.Sprintf("Runtime exception at PC=%d: %s\n", e.PC, e.Error())})
		},
	})
	s.emMutex.Lock()
	if s.emInst != nil {
		s.emInst.Terminate()
	}
	s.emInst = emulator
	s.emMutex.Unlock()

	done := make(chan struct{})
	displayWatcher := func() {
		prevWrites := int64(0)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if writes := emulator.display.Writes(); writes != prevWrites {
					prevWrites = writes
					s.sendDisplay(emulator.display)
				}
			}
		}
	}
	go displayWatcher()

	emulator.Emulate()
	close(done)

	s.sendDisplay(emulator.display)
	a, d, pc := emulator.GetRegisters()
	ram := make([]int, 16)
	for i := range ram {
		ram[i] = int(emulator.ReadRAM(uint16(i)))
	}
	s.send(stateMessage{
		Type:   "state",
		A:      a,
		D:      d,
		PC:     pc,
		Cycles: emulator.GetTotalInstructionsExecuted(),
		Halted: emulator.IsHalted(),
		RAM:    ram,
	})
	s.send(consoleMessage{Type: "console", Text: fmt.Sprintf("Emulator completed after %d instructions\n", emulator.GetTotalInstructionsExecuted())})
}

func (s *session) listen() {
	for {
		_, messageBytes, err := s.conn.ReadMessage()
		if err != nil {
			util.LogF("Hack emulator: read: %v", err)
			if em := s.emulator(); em != nil {
				em.Terminate()
			}
			return
		}

		message := clientMessage{}
		if err := json.Unmarshal(messageBytes, &message); err != nil {
			glog.Warningf("Hack emulator: invalid message: %v", err)
			return
		}

		switch message.Type {
		case "run":
			go s.run()
		case "stop":
			if em := s.emulator(); em != nil {
				em.Terminate()
			}
		case "keyboard":
			if em := s.emulator(); em != nil {
				em.SetKey(message.Key)
			}
		default:
			glog.Warningf("Unknown message type: %s", message.Type)
		}
	}
}

// NewStandaloneHandler serves the emulator page on / and the websocket on /ws.
// programPath is reloaded on every run so edits show up without a restart.
func NewStandaloneHandler(programPath string, runtimeLimit uint64) http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			glog.Warning(err)
			return
		}
		defer conn.Close()

		s := &session{programPath: programPath, runtimeLimit: runtimeLimit, conn: conn}
		s.listen()
	})
	mux.HandleFunc("/", handleGetPage)
	return mux
}

func RunStandaloneWebserver(programPath string, addr string, runtimeLimit uint64) error {
	glog.Infof("Connect to the emulator at http://localhost%s", addr)
	return http.ListenAndServe(addr, NewStandaloneHandler(programPath, runtimeLimit))
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}

var htmlPage = `<html>
<head>
	<title>Hack Emulator</title>
</head>
<body style="background-color: #1E1E1E;">
	<h1 style="color: white; display: inline-block;">Hack Emulator</h1>
	<button id="runButton" style="margin-left: 50px; height: 40px; width: 80px;">RUN</button>
	<button id="stopButton" style="margin-left: 10px; height: 40px; width: 80px;">STOP</button>
	<br/>
	<canvas width="512" height="256" style="border: 2px solid white; background-color: white;" id="display"></canvas>
	<h2 style="color: white;">State</h2>
	<pre style="color: white;" id="state"></pre>
	<h2 style="color: white;">Console</h2>
	<div style="width: 980px; padding: 10px; color: white; font-family: monospace; background-color: black; height: 200px; overflow-y: auto; border: 2px solid white;" id="console"></div>

	<script>
		var socket = new WebSocket("ws://" + location.host + "/ws");
		var consoleText = "";

		socket.onmessage = function(event) {
			var data = JSON.parse(event.data);
			if (data.type == "console") {
				consoleText += data.text.replaceAll("\n", "<br/>");
				document.getElementById("console").innerHTML = consoleText;
			} else if (data.type == "state") {
				document.getElementById("state").textContent = JSON.stringify(data, null, 2);
			} else if (data.type == "display") {
				var raw = window.atob(data.data);
				var ctx = document.getElementById("display").getContext("2d");
				var imageData = ctx.createImageData(data.width, data.height);
				for (var y = 0; y < data.height; y++) {
					for (var x = 0; x < data.width; x++) {
						var word = y * (data.width / 16) + (x >> 4);
						var bit = x & 15;
						var b = raw.charCodeAt(word * 2 + (bit >> 3));
						var v = ((b >> (bit & 7)) & 1) ? 0 : 255;
						var i = (y * data.width + x) * 4;
						imageData.data[i] = v;
						imageData.data[i + 1] = v;
						imageData.data[i + 2] = v;
						imageData.data[i + 3] = 255;
					}
				}
				ctx.putImageData(imageData, 0, 0);
			}
		};

		document.onkeydown = function(e) {
			socket.send(JSON.stringify({type: "keyboard", key: e.keyCode}));
		};
		document.onkeyup = function(e) {
			socket.send(JSON.stringify({type: "keyboard", key: 0}));
		};

		document.getElementById("runButton").onclick = function() {
			consoleText = "";
			socket.send(JSON.stringify({type: "run"}));
		};
		document.getElementById("stopButton").onclick = function() {
			socket.send(JSON.stringify({type: "stop"}));
		};
	</script>
</body>
</html>`
