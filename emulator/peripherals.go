package emulator

// Virtual Display

func (s *VirtualDisplay) read(offset uint16) uint16 {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()
	return s.data[offset]
}

func (s *VirtualDisplay) write(offset uint16, value uint16) {
	s.dataMutex.Lock()
	s.data[offset] = value
	s.dataMutex.Unlock()
	s.displayWrites.Add(1)
}

func (s *VirtualDisplay) clear() {
	s.dataMutex.Lock()
	s.data = [ScreenWords]uint16{}
	s.dataMutex.Unlock()
	s.displayWrites.Add(1)
}

// Writes counts the screen writes so far.
func (s *VirtualDisplay) Writes() int64 {
	return s.displayWrites.Load()
}

// Bytes returns the screen memory map as little endian words. Pixel x of a
// row is bit x%16 of word x/16, the least significant bit being leftmost.
func (s *VirtualDisplay) Bytes() []byte {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	out := make([]byte, 0, ScreenWords*2)
	for _, w := range s.data {
		out = append(out, byte(w), byte(w>>8))
	}
	return out
}

// Pixel reports whether the pixel at (x, y) is black.
func (s *VirtualDisplay) Pixel(x, y int) bool {
	word := s.read(uint16(y*ScreenWidth/16 + x/16))
	return word&(1<<(x%16)) != 0
}
