package timescale

import (
	"github.com/subtlepseudonym/almanac/julian"
)

const (
	// TTMinusTAI is the fixed offset TT-TAI in seconds
	TTMinusTAI = 32.184

	elg  = 6.969290134e-10 // 1 - d(TT)/d(TCG)
	elb  = 1.550519768e-8  // 1 - d(TDB)/d(TCB)
	tdb0 = -6.55e-5        // TDB-TT at TAI 1977 Jan 1.0, seconds
)

var (
	// 1977 Jan 1 00:00:32.184 TT, when TT, TCG and TCB agree
	t77t  = julian.MJD1977 + TTMinusTAI/julian.SecondsPerDay
	t77td = julian.MJD0 + julian.MJD1977
	t77tf = TTMinusTAI / julian.SecondsPerDay
)

// shift adds seconds to the smaller-magnitude part of d, leaving the
// dominant digits untouched.
func shift(d julian.Date, seconds float64) julian.Date {
	big, small, bigFirst := d.Split()
	return julian.Join(big, small+seconds/julian.SecondsPerDay, bigFirst)
}

func TAIToTT(tai julian.Date) julian.Date {
	return shift(tai, TTMinusTAI)
}

func TTToTAI(tt julian.Date) julian.Date {
	return shift(tt, -TTMinusTAI)
}

// TAIToUT1 applies dta = UT1-TAI in seconds
func TAIToUT1(tai julian.Date, dta float64) julian.Date {
	return shift(tai, dta)
}

// UT1ToTAI applies dta = UT1-TAI in seconds
func UT1ToTAI(ut1 julian.Date, dta float64) julian.Date {
	return shift(ut1, -dta)
}

// TTToUT1 applies deltaT = TT-UT1 in seconds
func TTToUT1(tt julian.Date, deltaT float64) julian.Date {
	return shift(tt, -deltaT)
}

// UT1ToTT applies deltaT = TT-UT1 in seconds
func UT1ToTT(ut1 julian.Date, deltaT float64) julian.Date {
	return shift(ut1, deltaT)
}

// TTToTDB applies dtr = TDB-TT in seconds. The caller supplies dtr, which
// is periodic with an amplitude of about 1.7ms.
func TTToTDB(tt julian.Date, dtr float64) julian.Date {
	return shift(tt, dtr)
}

// TDBToTT applies dtr = TDB-TT in seconds
func TDBToTT(tdb julian.Date, dtr float64) julian.Date {
	return shift(tdb, -dtr)
}

// TTToTCG applies the IAU 2000 rate between TT and TCG
func TTToTCG(tt julian.Date) julian.Date {
	big, small, bigFirst := tt.Split()
	small += ((big - julian.MJD0) + (small - t77t)) * (elg / (1.0 - elg))
	return julian.Join(big, small, bigFirst)
}

func TCGToTT(tcg julian.Date) julian.Date {
	big, small, bigFirst := tcg.Split()
	small -= ((big - julian.MJD0) + (small - t77t)) * elg
	return julian.Join(big, small, bigFirst)
}

// TDBToTCB applies the IAU 2006 rate and offset between TDB and TCB
func TDBToTCB(tdb julian.Date) julian.Date {
	big, small, bigFirst := tdb.Split()
	d := t77td - big
	f := small - tdb0/julian.SecondsPerDay
	small = f - (d-(f-t77tf))*(elb/(1.0-elb))
	return julian.Join(big, small, bigFirst)
}

func TCBToTDB(tcb julian.Date) julian.Date {
	big, small, bigFirst := tcb.Split()
	d := big - t77td
	small = small + tdb0/julian.SecondsPerDay - (d+(small-t77tf))*elb
	return julian.Join(big, small, bigFirst)
}
