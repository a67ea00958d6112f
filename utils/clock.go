package utils

import "time"

// NowMillis mengembalikan waktu sekarang sebagai Unix milliseconds.
// Semua perhitungan sisa waktu makan memakai satuan ini.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
