package envelope

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"golang.org/x/crypto/curve25519"

	"github.com/duskcell/envelope/internal/kdf"
)

// Hardcoded regression vector: ten Ed25519 seeds and a 2500-byte plaintext
// pulled from the original implementation this package generalizes, used as
// a fixed round-trip input independent of this package's own random
// generation. The ephemeral key and payload secret are still random, so the
// blob bytes themselves are not pinned; every seed is a listed recipient.

func TestHardCodedVector(t *testing.T) {
	plaintext, err := hex.DecodeString(hardCodedPlaintextHex)
	if err != nil {
		t.Fatalf("decode hardcoded plaintext: %v", err)
	}
	if len(plaintext) != 2500 {
		t.Fatalf("hardcoded plaintext length = %d, want 2500", len(plaintext))
	}

	seeds := make([][]byte, len(hardCodedSeedsHex))
	pubs := make([]ed25519.PublicKey, len(hardCodedSeedsHex))
	for i, sh := range hardCodedSeedsHex {
		seed, err := hex.DecodeString(sh)
		if err != nil {
			t.Fatalf("decode seed %d: %v", i, err)
		}
		seeds[i] = seed
		pubs[i] = ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	}

	blob, err := Encrypt(pubs, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	for i, seed := range seeds {
		got, err := Decrypt(seed, blob)
		if err != nil {
			t.Fatalf("Decrypt seed %d: %v", i, err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("seed %d: decrypted plaintext mismatch", i)
		}
	}
}

// TestLastRecordRejectsUnrelatedKey mirrors an attack against the last
// recipient record: take the final entry's encrypted secret and the GCM
// body from a real envelope, then redo the key-derivation and unwrap steps
// by hand using a freshly generated, unrelated Curve25519 keypair in place
// of the true recipient. The GCM open must fail.
func TestLastRecordRejectsUnrelatedKey(t *testing.T) {
	_, pubs := genSeeds(t, 3)
	plaintext := []byte("payload that must not be recoverable by an outsider")

	blob, err := Encrypt(pubs, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	ephemeralPub, records, gcmBody, err := parseBlob(blob)
	if err != nil {
		t.Fatalf("parseBlob: %v", err)
	}
	lastRecord := records[len(records)-1]

	var unrelatedPriv [32]byte
	if _, err := rand.Read(unrelatedPriv[:]); err != nil {
		t.Fatalf("generate unrelated private key: %v", err)
	}
	unrelatedPriv[0] &= 248
	unrelatedPriv[31] &= 127
	unrelatedPriv[31] |= 64
	unrelatedPubSlice, err := curve25519.X25519(unrelatedPriv[:], curve25519.Basepoint)
	if err != nil {
		t.Fatalf("derive unrelated public key: %v", err)
	}
	var unrelatedPub [32]byte
	copy(unrelatedPub[:], unrelatedPubSlice)

	q, err := curve25519.X25519(unrelatedPriv[:], ephemeralPub[:])
	if err != nil {
		t.Fatalf("dh: %v", err)
	}
	var qArr [32]byte
	copy(qArr[:], q)

	ctrKey, ctrIV := kdf.CTRKeyIV(qArr, unrelatedPub, ephemeralPub)
	secret, err := ctrCrypt(ctrKey, ctrIV, lastRecord.encSecret[:])
	if err != nil {
		t.Fatalf("ctrCrypt: %v", err)
	}
	var secretArr [32]byte
	copy(secretArr[:], secret)

	gcmKey, gcmNonce := kdf.GCMKeyNonce(secretArr)
	if _, err := openGCM(gcmKey, gcmNonce, gcmBody); err == nil {
		t.Fatal("expected GCM open to fail with an unrelated key, but it succeeded")
	}
}

const hardCodedPlaintextHex = "" +
	"bf9c3958b40947e85e57436ebdd2bb4db45937a47078c8af3d88775984168758" +
	"efcc683558598dee862b14aaf33bd6ddd0056c3ea9d558e73f97682b75a1b45c" +
	"b7a2c60784d73b6c6566559082f8d864adf8e948328397a79fad7709e0309fcf" +
	"0ff21071c2e77c6000d320795ea4592ec08fb524aab8e73fdc49e895c99b119d" +
	"ea7ad5045ed78bfc1d5405d6cd30f830061fa58d411b7f0e0be5909cddf721e9" +
	"a23205a1af01bbacbb58e6c8c90f7cf4766fef8637964c11559ed96b2e65eba3" +
	"1ac668d5e64c74e74b49f98886e79f44ddabdf923b8d5279367e554084b71a50" +
	"393a0d5ca072b2c3fdf8cdba1e939e5c257ca62f4fa5c89664085da4301bcecb" +
	"7c3805c4003fb75a98a383a633b475bfe7e9e3e2acbbb9f1ff4afbbe409f5bbd" +
	"5edb1dfa91aaf3fc797d15e6352e6518f0312ca760ff81f9424b667873d9c9e5" +
	"e8c89638830969df9b5441e7df0a5b3dfdbf5ecf4c1974f24a00f9d3f7dbbb98" +
	"415677398881d9ba0463517c05015e0d91b1f13590246f9b26660a9b023142a5" +
	"bd4459e2baf7bf7e8f0804c1bed9b407f8f31527a4f0397f1756a03f39705ec1" +
	"5510116a9f91760603c4d6f2fcf37142445f95a2f0cb5797e737e6cd9cbd5f9b" +
	"213f5550cb8bd5628d73e8554075e800170344d673b75647d3b828970e90b2c1" +
	"4f9ac491fe09648e194407667d6821da59cc8d80771f4b488594bb564a342ccb" +
	"2160dcbbfac02b10080157c7b1dafd12aeed3e8e14046996cb3b04499be631bd" +
	"3aeaefddfae87ad1612d063f4d4014b4be99c30ef29b4648c9653265c1e39079" +
	"044a630ae5ad95b6c9622a6888decec373be0091c3fa9012bc34e776b8a3ea3b" +
	"5984d99d26bf260219090b6c279ceaa320c84943bf673066d854ec7659fa9963" +
	"604042ddfaaa56f0d46de5c124c2bcac8925aef0c3044fa394d07feb4ca18ffa" +
	"69095ab0c7927b039b22a5ce01ef4cebb197ae2c8e91f1039e412451c30e855b" +
	"cc3c652a0eea7e8d9823b563866001513df74d7debca7572e39034008692d4cc" +
	"ff5eede3b01945db068ba26e677976c565c1a50f3e239aacf7a9b3a51514de50" +
	"06e3111bb197af9c7dce4f2bf7ece3932ca1acda350443b2b7e3b13c732d888b" +
	"07677ae64e7f8b70cefeff96dfe17b97efd621b460fe429f8299d1908bf4d4cc" +
	"f3801224366472c306d830b085f42066558438852ee3b5f52a4e8f48108ba4da" +
	"889cab15ea5f426fcdf30927756522bbf798c34722e9381aa76dedd03c12f9dd" +
	"7bcd6c1ac2ecfeb649a679ed93dd5f029aaf316d9dc44910f45cf59d24d5f438" +
	"aed3328a814fdf963bbb62bfb36d8ab9e65c5d58e2b581f594f749dd2106d166" +
	"5fdb055418a90d2e5b5ec743c4989f3033fc9c2fd119f1fa228ae9963e0cb5a3" +
	"5675cb1930151c8ed3dce313c758b1e00452efb7a048b5e8fe0fe31c2b17645a" +
	"3a6ffe45ec2e6fba335cc825926ca2e59784ddf950b9a424c295b19cbe09fe24" +
	"61a5ee733873d57071ad39db430375f17a6ae760227d7fb13b5bc5becbb01dd7" +
	"2b002e37e0141757b9ac4de3dfdfc079613b294c70e9f19a9da526d279cfe7b8" +
	"d1cff9ed89c7462f48ff8db14a8fa6d20fc76b7f8a5d7d670e3fec5aaa1b8247" +
	"e2d8314fef5ba777e7e1db89e710503e68a8abd3f79cd2d3399d3fdf36874825" +
	"efed27d169ab1e05d1cd4ccd1a4ca1550f751de7f0b9b6edb36e653e8b741b8c" +
	"6768807d23546e12d56044e4d892131e2529dfddef9a34d078b4fe51b883a108" +
	"6eb243d2cd06baed8982b48cb9dd1288a9ed59ef8be3df5df01efa3ddbf04d16" +
	"eccd84b26232c7faf09324306bdcc3d82ec2f459dd151c9c8495fcaad241c77a" +
	"aa370ebf583f7a60d451e504f83ba16f31560749bcbc2f746253c3fab308758a" +
	"10e56bdc5e71c303c0561bdd876b5af7d1df71d5e4a7db619ae96cda3a4f7bc1" +
	"299cc3a9ba7483d515a84d4d9db99c7ea5bb70b9ffe741f0bfea8733fbbf1b95" +
	"6815bd7aa200bb58538832440e5b033cfc7f4517b87cd876a0e5c78558599720" +
	"1b86e3dfa4316d5c82b60c2ad5788ab3095827e4041350c08d8983479041b686" +
	"6a3a478020c3ab015ae058cca72dfd9b60e41384efc36634c376c57db09073a5" +
	"b37a8c0eef5a719a17b9f70917dd2bee8c015d426fd9457e296f30c644d23411" +
	"84b3422b9671a779e7d161ea0a283d35d904dfb61c78c15a814b6c2c5508c52e" +
	"e5474c07affada2eee5eb9ec9bd31b666f0cea2d5074b2b74d21ce406bf45d9a" +
	"04ade60852a4d910c64a1d230d9f537fede9fc19b27eae5edd4f837f2e6e14d3" +
	"2856db4fb37b507aa2dde3c75c59a19ad3548e421cfd3782628fd591da6f2647" +
	"40a198b37850fc8957e3baaf11e343721205be84f91133fa432f15306b43a8ef" +
	"9d7603892671093b5860a5831cfa7a836e1dd180ebb8b619a6cd62006ecfab35" +
	"716f1e73d521034cc81e6389b7c52336eec85ce1d3859bd108c5a8396181e053" +
	"cc1f13c6d2fffc74a256cca972f523f7337bc9f388d4cc233e301366dbcf2c03" +
	"6427d94b40d7a639e4379fcfdd8dc89ae66e67a1aaefda235b8f9c28b4dfae84" +
	"8433a05840558e65d12002b19f15bcfc2c2f0b8dd7f35dc85355b7b0432147fb" +
	"1b4bd3be2bc97a50cb72931ade2761e0334b097f7d9b4adb2eb7206b9a0f7973" +
	"bbd2071a75a2e4bdaa04b298c4579dba09af72930a0fe2b63ec8a3e8111493ba" +
	"56fe50cde7909cfc74a67df75d1d5b09d8853c823c0335b7518fedaba14ff9aa" +
	"03198f6f5313e2b78b912b9eab3af31293467cb872695695034c9b125b49bfac" +
	"db35d208c431475ae650b9e4cdb0fa4f6bf99093549914e78ff45aa61bcea298" +
	"c1847133af3a2de096dcb6caaf66a094a04ab2c89728c18ba09fc0a307221307" +
	"4de1d5e0acbb469ae2601e3491c8f66ea17a6e6e709a01df44a606acf2c80af2" +
	"3275fc06e71f8e536f14b7630d785ca1b761e4408228e9ae3b2a3813d971e45f" +
	"8a17b2bf9cbf43bfef86c2bc8f47ef11200a14bb8c7a63d0915d63d844dfd75f" +
	"23e3b5520f57103110291cfcfbe3e0a4f5829ad35575d9e9d53baa7b6a903e70" +
	"770b2a5cfe1d7124a1b8062e95f81c8a766433a65da4f5d5d7b6e172413108d2" +
	"74f9a8148f64ca74338a2cc65dc18f6f5d7320586b08b1059f5a200f1be326cf" +
	"ab8f0ccc600950f832ed8c02332944ebf57091753e56de425317aa1ed20e4e9d" +
	"041347c6d846488670bdae7a75dbe97f4397ed9d8a5724b68982cb52b7597238" +
	"7bca2282bd8fd1cdeda3d1b0397849d2250fc155bc95e523d08087627b8250d5" +
	"bd81054d50cad5f97b5a71a20ba723e6f5eafc83c3acbd0f6f89fc669584688e" +
	"a5c12302166775446c4359e5deb9c91e4b35e220def7e6b2ffee3dba8ea76723" +
	"ad55acc1b8eecfae9518c18ae24d0b630ceaf6bb1b8d5ef4768cc688b2febffd" +
	"d96d0cb6686adb1e7d46ee305eae85d2f86a86c439592a04b126d57db922e0b0" +
	"afdc7cfe6ebe8c3329ad0ca0b79272023cc9dedd0ecf60558864e1b59af4ea56" +
	"a2d27b7d"

var hardCodedSeedsHex = [10]string{
	"8319c1abaed61571c18fae4c20458e5ecd65460eed36ecdb2957528d5cdacc19",
	"f4c2bfe10078064ccf8d315f3b54e2eab7151c001155898904f46d79d4f91e2b",
	"abfa1483c869ae1a74a2ccb31120816c993b4798da11039c96c047a25ebb7cca",
	"606befb83d27434b9601407acdb174116ef6968d411c49fd8892e14d548abf64",
	"87b3b78ba099504c0b2d1ac4a0f80a74e7098d3ba902bba47f7f8da732180083",
	"0bd889391c4e1be39470ee03b81f40c65ecc8166af8d0766c65437b065ef94c6",
	"a4d9e615c9c644c523175530410858e25880dacf0ca40c2b5ad68088fd3decf6",
	"3ef13acfde5055e3dd5195d1387da8da0e72d874cbca00faea4f6f9500a13a07",
	"598c32aeb9ab55eb1cc6446884aa528084f883f2db08809a0baed8fa1869f684",
	"d7d078d8d233aa6e19ca040635e141240b347428855858cbd7f90ccd21da9a10",
}

