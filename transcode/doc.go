// SPDX-License-Identifier: EPL-2.0

// Package transcode bridges a PCM decoder and a PCM encoder that disagree on
// channel layout and buffer size.
//
// A Channel is driven by a polling loop:
//
//	ch, _ := transcode.New(dec, enc, encoderFormat)
//	_ = ch.SetActualFormat(decoderFormat)
//
//	// whenever the decoder reports a buffer:
//	_ = ch.EnqueueDecoderOutput(index, ptsUs)
//
//	// and as often as the encoder can take data:
//	for {
//	    ok, err := ch.FeedEncoder(10 * time.Millisecond)
//	    if err != nil || !ok {
//	        break
//	    }
//	}
//
// Decoder buffers are remixed in the order they were enqueued. When a remixed
// buffer does not fit the encoder slot, the rest is kept in an overflow
// buffer and sent by the following FeedEncoder calls before anything else.
// Every buffer handed to the encoder carries the presentation time of its
// first sample.
//
// Sample rate conversion is not supported: SetActualFormat fails with
// ErrSampleRateMismatch when the rates differ.
package transcode
