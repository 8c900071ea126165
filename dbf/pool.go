package dbf

import "sync"

// Buffer pool with capacity classes, shared by the span iterator and the
// dBase IV memo reader. Buffers above the largest class are not pooled.
var bufferClasses = [...]int{1 << 10, 64 << 10, 1 << 20}

var bufferPools = func() [len(bufferClasses)]*sync.Pool {
	var pools [len(bufferClasses)]*sync.Pool
	for i := range bufferClasses {
		size := bufferClasses[i]
		pools[i] = &sync.Pool{
			New: func() interface{} {
				return make([]byte, size)
			},
		}
	}
	return pools
}()

func getBuffer(size int) []byte {
	for i, class := range bufferClasses {
		if size <= class {
			return bufferPools[i].Get().([]byte)[:size]
		}
	}
	return make([]byte, size)
}

func putBuffer(buf []byte) {
	if cap(buf) > bufferClasses[len(bufferClasses)-1] {
		return
	}
	for i := len(bufferClasses) - 1; i >= 0; i-- {
		if cap(buf) >= bufferClasses[i] {
			bufferPools[i].Put(buf[:bufferClasses[i]])
			return
		}
	}
}
