// Package gf256 implements GF(256) arithmetic and Reed-Solomon encode/decode
// for the ECC 200 convention: primitive polynomial x^8+x^5+x^3+x^2+1 (0x12D),
// primitive element 2, first consecutive root 1.
//
// The decoder is a direct translation of the classic Berlekamp-Massey /
// Chien-search / Forney-algorithm decoder (dmtxfec.c, itself derived from
// Phil Karn's libfec), adapted to operate on a single contiguous codeword
// block rather than libfec's general (n, nroots, fcr, prim, pad) signature.
package gf256

const (
	// symSize is the number of bits per field element (GF(2^8)).
	symSize = 8
	// fieldSize is 2^symSize - 1, the number of nonzero field elements.
	fieldSize = 255
	// genPoly is the primitive polynomial x^8+x^5+x^3+x^2+1 used by ECC 200,
	// with the x^8 term included as bit 8: 0b1_0010_1101 = 0x12D.
	genPoly = 0x12D
	// fcr is the first consecutive root exponent and prim the primitive
	// element's exponent step between roots (both 1 for ECC 200).
	fcr  = 1
	prim = 1
)

// logTable and expTable are the field's discrete log / antilog tables,
// indexed and valued over [0, 255]. expTable has an extra entry so that
// expTable[logTable[a]] is always safe even for intermediate sums that
// wrap past fieldSize.
var (
	logTable [fieldSize + 1]int
	expTable [fieldSize + 1]int
)

func init() {
	// Build antilog/log tables by repeatedly multiplying by the primitive
	// element (alpha = 2) and reducing modulo genPoly, mirroring
	// init_rs_char's sr<<=1; if overflow, xor genPoly loop.
	sr := 1
	for i := 0; i < fieldSize; i++ {
		expTable[i] = sr
		logTable[sr] = i
		sr <<= 1
		if sr&(1<<symSize) != 0 {
			sr ^= genPoly
		}
		sr &= fieldSize
	}
	if sr != 1 {
		panic("gf256: genPoly is not primitive")
	}
	expTable[fieldSize] = expTable[0]
	logTable[0] = -1
}

// modN reduces x into [0, fieldSize) the way libfec's MODNN macro does,
// by repeated subtraction rather than a modulo (x is always close to the
// range during RS arithmetic).
func modN(x int) int {
	for x >= fieldSize {
		x -= fieldSize
		x = (x >> symSize) + (x & fieldSize)
	}
	return x
}

// Mul multiplies two field elements.
func Mul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[modN(logTable[a]+logTable[b])]
}

// Add is field addition (XOR in GF(2^8)).
func Add(a, b int) int {
	return a ^ b
}

// Exp returns alpha^e (expTable lookup), wrapping e into range.
func Exp(e int) int {
	return expTable[modN(e)]
}

// Log returns the discrete log of the nonzero element a.
func Log(a int) int {
	return logTable[a]
}

// GeneratorPoly builds the degree-nroots Reed-Solomon generator polynomial
// as a product of (x - alpha^(fcr*prim + i*prim)) for i in [0, nroots),
// returned in log form (genPoly[i] = logTable value, or -1 meaning "no such
// term"), matching init_rs_char's genpoly construction.
func GeneratorPoly(nroots int) []int {
	g := make([]int, nroots+1)
	g[0] = 1
	root := fcr * prim
	for i := 0; i < nroots; i++ {
		g[i+1] = 1
		for j := i; j > 0; j-- {
			if g[j] != 0 {
				g[j] = g[j-1] ^ Mul(g[j], expTable[modN(root)])
			} else {
				g[j] = g[j-1]
			}
		}
		g[0] = Mul(g[0], expTable[modN(root)])
		root += prim
	}
	// Convert to log form for the LFSR encoder, as init_rs_char does.
	logForm := make([]int, nroots+1)
	for i := range g {
		logForm[i] = logTable[g[i]]
	}
	return logForm
}

// Encode computes nroots error-correction codewords for data (of length
// len(data)) using the LFSR division implied by genpoly (as produced by
// GeneratorPoly), writing them into parity (which must have length nroots).
// This is a direct translation of encode_rs_char's shift-register loop.
func Encode(data []byte, genpoly []int, parity []byte) {
	nroots := len(parity)
	for i := range parity {
		parity[i] = 0
	}
	for i := 0; i < len(data); i++ {
		feedback := logTable[int(data[i])^int(parity[0])]
		if feedback != -1 {
			for j := 1; j < nroots; j++ {
				if genpoly[nroots-j] != -1 {
					parity[j-1] = byte(int(parity[j]) ^ expTable[modN(genpoly[nroots-j]+feedback)])
				} else {
					parity[j-1] = parity[j]
				}
			}
			parity[nroots-1] = byte(expTable[modN(genpoly[0]+feedback)])
		} else {
			copy(parity[0:nroots-1], parity[1:nroots])
			parity[nroots-1] = 0
		}
	}
}

// Decode corrects errors in place across block (data followed by its
// parity/ECC codewords, total length len(block) = len(data)+nroots), using
// no a-priori erasure positions. It returns the number of corrected symbols,
// or -1 if the block is uncorrectable (too many errors to fix reliably).
//
// This follows decode_rs_char's structure: syndrome computation,
// Berlekamp-Massey to find the error-locator polynomial, Chien search for
// its roots, and Forney's algorithm to compute the error magnitudes.
func Decode(block []byte, nroots int) int {
	return decodeWithErasures(block, nroots, nil)
}

// decodeWithErasures is the general decoder; eraPos lists symbol indices
// (from the start of block) already known to be wrong, letting the decoder
// correct up to nroots-1 total errors+erasures instead of nroots/2 errors.
// The shortened codeword is treated as a full-length one with pad leading
// zeros, exactly as decode_rs_char's PAD handling does.
func decodeWithErasures(block []byte, nroots int, eraPos []int) int {
	n := fieldSize
	pad := n - len(block)
	if pad < 0 || nroots <= 0 || nroots > len(block) {
		return -1
	}

	data := make([]int, len(block))
	for i, b := range block {
		data[i] = int(b)
	}

	// Syndromes: evaluate the received polynomial at each root of the
	// generator, then convert to index (log) form the way decode_rs_char
	// does; -1 stands in for libfec's A0 "log of zero" sentinel.
	s := make([]int, nroots)
	for i := range s {
		s[i] = data[0]
	}
	for j := 1; j < len(block); j++ {
		for i := 0; i < nroots; i++ {
			if s[i] == 0 {
				s[i] = data[j]
			} else {
				s[i] = data[j] ^ expTable[modN(logTable[s[i]]+(fcr+i)*prim)]
			}
		}
	}
	synError := 0
	for i := range s {
		synError |= s[i]
		s[i] = logTable[s[i]]
	}
	if synError == 0 {
		return 0
	}

	lambda := make([]int, nroots+1) // poly form
	lambda[0] = 1
	noEras := len(eraPos)
	if noEras > 0 {
		lambda[1] = expTable[modN(prim*(n-1-(eraPos[0]+pad)))]
		for i := 1; i < noEras; i++ {
			u := modN(prim * (n - 1 - (eraPos[i] + pad)))
			for j := i + 1; j > 0; j-- {
				if tmp := logTable[lambda[j-1]]; tmp != -1 {
					lambda[j] ^= expTable[modN(u+tmp)]
				}
			}
		}
	}

	b := make([]int, nroots+1) // index form
	t := make([]int, nroots+1) // poly form
	for i := 0; i <= nroots; i++ {
		b[i] = logTable[lambda[i]]
	}

	// Berlekamp-Massey: grow the error+erasure locator polynomial one
	// syndrome at a time.
	el := noEras
	for r := noEras + 1; r <= nroots; r++ {
		discr := 0
		for i := 0; i < r; i++ {
			if lambda[i] != 0 && s[r-i-1] != -1 {
				discr ^= expTable[modN(logTable[lambda[i]]+s[r-i-1])]
			}
		}
		discrLog := logTable[discr]
		if discrLog == -1 {
			// B(x) <- x*B(x)
			copy(b[1:], b[:nroots])
			b[0] = -1
			continue
		}
		// T(x) <- lambda(x) - discr*x*B(x)
		t[0] = lambda[0]
		for i := 0; i < nroots; i++ {
			if b[i] != -1 {
				t[i+1] = lambda[i+1] ^ expTable[modN(discrLog+b[i])]
			} else {
				t[i+1] = lambda[i+1]
			}
		}
		if 2*el <= r+noEras-1 {
			el = r + noEras - el
			// B(x) <- inv(discr) * lambda(x)
			for i := 0; i <= nroots; i++ {
				if lambda[i] == 0 {
					b[i] = -1
				} else {
					b[i] = modN(logTable[lambda[i]] - discrLog + n)
				}
			}
		} else {
			// B(x) <- x*B(x)
			copy(b[1:], b[:nroots])
			b[0] = -1
		}
		copy(lambda, t)
	}

	// Convert lambda to index form and find its degree.
	degLambda := 0
	lambdaLog := make([]int, nroots+1)
	for i := 0; i <= nroots; i++ {
		lambdaLog[i] = logTable[lambda[i]]
		if lambdaLog[i] != -1 {
			degLambda = i
		}
	}
	if degLambda == 0 {
		return -1
	}

	// Chien search: test every nonzero field element as a root of lambda.
	// With prim = 1 the element alpha^i found at step i corresponds to
	// error location i-1 in the full-length codeword.
	reg := make([]int, nroots+1)
	copy(reg[1:], lambdaLog[1:])
	root := make([]int, nroots)
	loc := make([]int, nroots)
	count := 0
	for i, k := 1, 0; i <= n; i, k = i+1, modN(k+1) {
		q := 1
		for j := degLambda; j > 0; j-- {
			if reg[j] != -1 {
				reg[j] = modN(reg[j] + j)
				q ^= expTable[reg[j]]
			}
		}
		if q != 0 {
			continue
		}
		root[count] = i
		loc[count] = k
		count++
		if count == degLambda {
			break
		}
	}
	if degLambda != count {
		return -1
	}

	// Error evaluator omega(x) = s(x)*lambda(x) mod x^nroots, index form.
	degOmega := degLambda - 1
	omega := make([]int, nroots+1)
	for i := 0; i <= degOmega; i++ {
		tmp := 0
		for j := i; j >= 0; j-- {
			if s[i-j] != -1 && lambdaLog[j] != -1 {
				tmp ^= expTable[modN(s[i-j]+lambdaLog[j])]
			}
		}
		omega[i] = logTable[tmp]
	}

	// Forney: error value at each root is omega(X^-1) / lambda'(X^-1),
	// scaled by X^(1-fcr).
	for j := count - 1; j >= 0; j-- {
		num1 := 0
		for i := degOmega; i >= 0; i-- {
			if omega[i] != -1 {
				num1 ^= expTable[modN(omega[i]+i*root[j])]
			}
		}
		num2 := expTable[modN(root[j]*(fcr-1)+n)]
		den := 0
		// lambda[i+1] for even i holds the formal derivative of lambda.
		for i := min(degLambda, nroots-1) &^ 1; i >= 0; i -= 2 {
			if lambdaLog[i+1] != -1 {
				den ^= expTable[modN(lambdaLog[i+1]+i*root[j])]
			}
		}
		if den == 0 {
			return -1
		}
		if num1 != 0 && loc[j] >= pad {
			data[loc[j]-pad] ^= expTable[modN(logTable[num1]+logTable[num2]+n-logTable[den])]
		}
	}

	for i := range block {
		block[i] = byte(data[i])
	}
	return count
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
