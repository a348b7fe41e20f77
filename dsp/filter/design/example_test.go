package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

func ExampleButterworthLP() {
	c, err := design.ButterworthLP(1000, 48000, 4)
	if err != nil {
		panic(err)
	}

	var chain biquad.StageChain
	chain.Configure(c.Active(), c.Len)

	fmt.Printf("sections=%d\n", chain.ActiveCount())
	fmt.Printf("100 Hz:   %.2f dB\n", chain.MagnitudeDB(100, 48000))
	fmt.Printf("1000 Hz:  %.2f dB\n", chain.MagnitudeDB(1000, 48000))
	fmt.Printf("10000 Hz: %.2f dB\n", chain.MagnitudeDB(10000, 48000))
	// Output:
	// sections=2
	// 100 Hz:   -0.00 dB
	// 1000 Hz:  -3.01 dB
	// 10000 Hz: -85.48 dB
}

func ExamplePeakDB() {
	c, err := design.PeakDB(48000, 1000, 2, 6)
	if err != nil {
		panic(err)
	}

	fmt.Printf("100 Hz:   %.2f dB\n", c.MagnitudeDB(100, 48000))
	fmt.Printf("1000 Hz:  %.2f dB\n", c.MagnitudeDB(1000, 48000))
	fmt.Printf("10000 Hz: %.2f dB\n", c.MagnitudeDB(10000, 48000))
	// Output:
	// 100 Hz:   0.02 dB
	// 1000 Hz:  6.00 dB
	// 10000 Hz: 0.01 dB
}
