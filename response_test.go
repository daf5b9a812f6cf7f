// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

import (
	. "gopkg.in/check.v1"

	"github.com/canonical/go-tpm2lite/internal/testutil"
)

type responseSuite struct{}

var _ = Suite(&responseSuite{})

func (s *responseSuite) TestUnmarshalNVReadResponse(c *C) {
	rsp := []byte{
		0x80, 0x02, // TPM_ST_SESSIONS
		0x00, 0x00, 0x00, 0x18, // responseSize
		0x00, 0x00, 0x00, 0x00, // TPM_RC_SUCCESS
		0x00, 0x00, 0x00, 0x05, // parameter area size
		0x00, 0x03, 0xaa, 0xbb, 0xcc, // buffer
		0x00, 0x00, 0x01, 0x00, 0x00} // authorization area

	resp, err := UnmarshalResponse(CommandNVRead, rsp)
	c.Assert(err, IsNil)
	c.Check(resp.Command, Equals, CommandNVRead)
	c.Check(resp.Header.Tag, Equals, TagSessions)
	c.Check(resp.Header.ResponseSize, Equals, uint32(24))
	c.Check(resp.Header.ResponseCode, Equals, ResponseSuccess)

	c.Assert(resp.NVRead, NotNil)
	c.Check(resp.NVRead.ParamsSize, Equals, uint32(5))
	c.Check(resp.NVRead.Buffer, DeepEquals, MaxNVBuffer{0xaa, 0xbb, 0xcc})

	// The buffer is a view into rsp, not a copy.
	c.Check(&resp.NVRead.Buffer[0], Equals, &rsp[16])
}

func (s *responseSuite) TestUnmarshalNVReadResponseShortAuthArea(c *C) {
	// An authorization area other than 5 bytes is unexpected but
	// tolerated: it is consumed entirely, leaving nothing unaccounted.
	rsp := []byte{
		0x80, 0x02,
		0x00, 0x00, 0x00, 0x16,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x05,
		0x00, 0x03, 0xaa, 0xbb, 0xcc,
		0x01, 0x00, 0x00} // 3 byte authorization area

	resp, err := UnmarshalResponse(CommandNVRead, rsp)
	c.Assert(err, IsNil)
	c.Assert(resp.NVRead, NotNil)
	c.Check(resp.NVRead.Buffer, DeepEquals, MaxNVBuffer{0xaa, 0xbb, 0xcc})
}

func (s *responseSuite) TestUnmarshalNVReadResponseParamsSizeMismatch(c *C) {
	// A parameter area size that doesn't cover the buffer stops the
	// parse before the authorization area, so the response is rejected
	// on the trailing-byte check.
	rsp := []byte{
		0x80, 0x02,
		0x00, 0x00, 0x00, 0x18,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x06, // inconsistent with the 3 byte buffer
		0x00, 0x03, 0xaa, 0xbb, 0xcc,
		0x00, 0x00, 0x01, 0x00, 0x00}

	resp, err := UnmarshalResponse(CommandNVRead, rsp)
	c.Check(resp, IsNil)
	c.Assert(err, ErrorMatches, `TPM returned an invalid response for command TPM_CC_NV_Read: payload contains 5 trailing bytes`)
}

func (s *responseSuite) TestUnmarshalNVReadResponseDeclaredSizeTooLarge(c *C) {
	// The buffer's declared size exceeds the bytes present. The payload
	// is not consumed, so the parse fails without reading out of bounds.
	rsp := []byte{
		0x80, 0x02,
		0x00, 0x00, 0x00, 0x13,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x09,
		0x00, 0x07, 0xaa, 0xbb, 0xcc}

	resp, err := UnmarshalResponse(CommandNVRead, rsp)
	c.Check(resp, IsNil)
	c.Assert(err, ErrorMatches, `TPM returned an invalid response for command TPM_CC_NV_Read: payload contains 3 trailing bytes`)
}

func (s *responseSuite) TestUnmarshalNVReadResponseTruncated(c *C) {
	rsp := []byte{
		0x80, 0x02,
		0x00, 0x00, 0x00, 0x0c,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00} // truncated parameter area size

	resp, err := UnmarshalResponse(CommandNVRead, rsp)
	c.Check(resp, IsNil)
	c.Assert(err, ErrorMatches, `TPM returned an invalid response for command TPM_CC_NV_Read: cannot unmarshal payload: insufficient data in buffer`)
}

func (s *responseSuite) TestUnmarshalHeaderOnly(c *C) {
	rsp := []byte{
		0x80, 0x01,
		0x00, 0x00, 0x00, 0x0a,
		0x00, 0x00, 0x01, 0x28} // TPM_RC_HANDLE

	resp, err := UnmarshalResponse(CommandNVWrite, rsp)
	c.Assert(err, IsNil)
	c.Check(resp.Header.Tag, Equals, TagNoSessions)
	c.Check(resp.Header.ResponseCode, Equals, ResponseCode(0x128))
	c.Check(resp.NVRead, IsNil)
}

func (s *responseSuite) TestUnmarshalHeaderOnlySizeMismatch(c *C) {
	// A header-only response whose size field disagrees with the bytes
	// received is reported as a diagnostic, not an error.
	rsp := []byte{
		0x80, 0x01,
		0x00, 0x00, 0x00, 0x0c, // claims 12 bytes
		0x00, 0x00, 0x00, 0x00}

	resp, err := UnmarshalResponse(CommandNVRead, rsp)
	c.Assert(err, IsNil)
	c.Check(resp.Header.ResponseSize, Equals, uint32(12))
}

func (s *responseSuite) TestUnmarshalNVWriteResponseDiscardsTrailing(c *C) {
	// NV_Write responses carry only session data after the header, which
	// is discarded without inspection whatever its size or content.
	for _, trailing := range [][]byte{
		nil,
		{0xff},
		{0x00, 0x00, 0x01, 0x00, 0x00},
		make([]byte, 32),
	} {
		rsp := []byte{
			0x80, 0x02,
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00}
		rsp[5] = uint8(len(rsp) + len(trailing))
		rsp = append(rsp, trailing...)

		resp, err := UnmarshalResponse(CommandNVWrite, rsp)
		c.Assert(err, IsNil)
		c.Check(resp.Command, Equals, CommandNVWrite)
		c.Check(resp.NVRead, IsNil)
	}
}

func (s *responseSuite) TestUnmarshalRoundTripNVWrite(c *C) {
	// Marshal an NV_Write, then parse a simulated acknowledgment. The
	// header-only ack and an ack with session data behind it must both
	// always parse.
	dest := make([]byte, 64)
	_, err := MarshalCommand(CommandNVWrite, &NVWriteParams{
		Index: 0x0100000a,
		Data:  MaxNVBuffer{0x01, 0x02, 0x03}}, dest)
	c.Assert(err, IsNil)

	ack := []byte{0x80, 0x01, 0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x00}
	resp, err := UnmarshalResponse(CommandNVWrite, ack)
	c.Assert(err, IsNil)
	c.Check(resp.Header.ResponseCode, Equals, ResponseSuccess)

	ack = append(ack, 0xde, 0xad, 0xbe, 0xef)
	ack[5] = 0x0e
	resp, err = UnmarshalResponse(CommandNVWrite, ack)
	c.Assert(err, IsNil)
	c.Check(resp.Header.ResponseCode, Equals, ResponseSuccess)
}

func (s *responseSuite) TestUnmarshalUnsupportedCommand(c *C) {
	// The caller's command code selects the payload unmarshaller. An
	// unsupported code with payload bytes behind the header cannot be
	// parsed, whatever those bytes are.
	for _, trailing := range [][]byte{
		{0x00},
		{0x01, 0x02, 0x03, 0x04},
		make([]byte, 64),
	} {
		rsp := append([]byte{
			0x80, 0x01,
			0x00, 0x00, 0x00, 0x0a,
			0x00, 0x00, 0x00, 0x00}, trailing...)

		resp, err := UnmarshalResponse(0x00000144, rsp)
		c.Check(resp, IsNil)
		c.Assert(err, ErrorMatches, `TPM returned an invalid response for command 0x00000144: unsupported command code`)
	}

	// A header-only response never reaches command dispatch, so it
	// decodes even for a command this package has no unmarshaller for.
	rsp := []byte{0x80, 0x01, 0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x00}
	resp, err := UnmarshalResponse(0x00000144, rsp)
	c.Assert(err, IsNil)
	c.Check(resp.NVRead, IsNil)
}

func (s *responseSuite) TestUnmarshalShortResponse(c *C) {
	for _, size := range []int{0, 1, 9} {
		resp, err := UnmarshalResponse(CommandNVRead, make([]byte, size))
		c.Check(resp, IsNil)
		c.Assert(err, NotNil)

		_, isInvalid := err.(*InvalidResponseError)
		c.Check(isInvalid, testutil.IsTrue)
	}
}
