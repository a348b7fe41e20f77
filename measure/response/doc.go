// Package response measures the frequency response of block processors.
//
// Two probes are provided. ToneGainDB drives a processor with a sine and
// measures the steady-state gain at that frequency by projecting the
// output onto the tone over a whole number of periods. MagnitudeResponse
// transforms an impulse response with an FFT and returns the magnitude of
// every bin from DC to Nyquist.
//
//	gain := response.ToneGainDB(chain, 1000, 48000)
//	ir := response.ImpulseResponse(chain, 4096)
//	mag, _ := response.MagnitudeResponse(ir, 4096)
package response
