// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

import (
	. "gopkg.in/check.v1"
)

type errorsSuite struct{}

var _ = Suite(&errorsSuite{})

func (s *errorsSuite) TestDecodeResponseCodeSuccess(c *C) {
	c.Check(DecodeResponseCode(CommandNVRead, ResponseSuccess), IsNil)
}

func (s *errorsSuite) TestDecodeResponseCodeError(c *C) {
	err := DecodeResponseCode(CommandNVRead, 0x00000128)
	c.Assert(err, FitsTypeOf, &TPMError{})
	c.Check(err.(*TPMError).Command, Equals, CommandNVRead)
	c.Check(err.(*TPMError).Code, Equals, ResponseCode(0x128))
	c.Check(err, ErrorMatches, `TPM returned an error whilst executing command TPM_CC_NV_Read: 0x00000128`)
}

func (s *errorsSuite) TestDecodeResponseCodeWarning(c *C) {
	err := DecodeResponseCode(CommandNVWrite, 0x00000922) // TPM_RC_RETRY
	c.Assert(err, FitsTypeOf, &TPMWarning{})
	c.Check(err.(*TPMWarning).Code, Equals, ResponseCode(0x922))
}

func (s *errorsSuite) TestDecodeResponseCodeFormatOne(c *C) {
	// Format-one codes (bit 7 set) are always errors, even with bit 11
	// set, as that is part of the index field there.
	err := DecodeResponseCode(CommandNVWrite, 0x000009a2)
	c.Assert(err, FitsTypeOf, &TPMError{})
}

func (s *errorsSuite) TestIsTPMError(c *C) {
	err := DecodeResponseCode(CommandNVRead, 0x00000128)
	c.Check(IsTPMError(err, CommandNVRead), Equals, true)
	c.Check(IsTPMError(err, CommandNVWrite), Equals, false)
	c.Check(IsTPMWarning(err, CommandNVRead), Equals, false)
}

func (s *errorsSuite) TestCommandCodeString(c *C) {
	c.Check(CommandNVRead.String(), Equals, "TPM_CC_NV_Read")
	c.Check(CommandNVWrite.String(), Equals, "TPM_CC_NV_Write")
	c.Check(CommandCode(0x144).String(), Equals, "0x00000144")
}

func (s *errorsSuite) TestStructTagString(c *C) {
	c.Check(TagSessions.String(), Equals, "TPM_ST_SESSIONS")
	c.Check(TagNoSessions.String(), Equals, "TPM_ST_NO_SESSIONS")
	c.Check(StructTag(0x1234).String(), Equals, "0x1234")
}
