package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	privateKeyFile = "private_key.pem"
	publicKeyFile  = "public_key.pem"
	rsaKeyBits     = 2048

	// PasswordCipher names the padding clients must use when encrypting
	PasswordCipher = "RSA-PKCS1v15"
)

// ErrDecryptPassword is returned for any ciphertext that cannot be decrypted
var ErrDecryptPassword = errors.New("cannot decrypt password")

// KeyPair holds the RSA key clients use to encrypt passwords in transit
type KeyPair struct {
	private   *rsa.PrivateKey
	publicPEM string
}

// LoadOrGenerateKeyPair loads the key pair from dir, or generates and
// persists a new one when the files are missing or unreadable. A persist
// failure is logged and the in-memory pair is still returned.
func LoadOrGenerateKeyPair(dir string, log *zap.Logger) (*KeyPair, error) {
	if log == nil {
		log = zap.NewNop()
	}
	privPath := filepath.Join(dir, privateKeyFile)
	pubPath := filepath.Join(dir, publicKeyFile)

	kp, err := loadKeyPair(privPath, pubPath)
	if err == nil {
		log.Info("Loaded RSA key pair", zap.String("dir", dir))
		return kp, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		log.Warn("Stored RSA key pair unusable, generating a new one", zap.Error(err))
	}

	kp, err = GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	if err := kp.save(dir, privPath, pubPath); err != nil {
		log.Warn("Failed to persist RSA key pair", zap.String("dir", dir), zap.Error(err))
	} else {
		log.Info("Generated RSA key pair", zap.String("dir", dir))
	}
	return kp, nil
}

// GenerateKeyPair creates a fresh in-memory 2048-bit key pair
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate rsa key: %w", err)
	}
	pubPEM, err := encodePublicKey(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	return &KeyPair{private: priv, publicPEM: pubPEM}, nil
}

func loadKeyPair(privPath, pubPath string) (*KeyPair, error) {
	privBytes, err := os.ReadFile(privPath)
	if err != nil {
		return nil, err
	}
	pubBytes, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(privBytes)
	if block == nil {
		return nil, fmt.Errorf("%s: no PEM block", privPath)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", privPath, err)
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%s: not an RSA key", privPath)
	}
	if pubBlock, _ := pem.Decode(pubBytes); pubBlock == nil {
		return nil, fmt.Errorf("%s: no PEM block", pubPath)
	}
	return &KeyPair{private: priv, publicPEM: string(pubBytes)}, nil
}

func (k *KeyPair) save(dir, privPath, pubPath string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	der, err := x509.MarshalPKCS8PrivateKey(k.private)
	if err != nil {
		return err
	}
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
		return err
	}
	return os.WriteFile(pubPath, []byte(k.publicPEM), 0o644)
}

func encodePublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}

// PublicKeyPEM returns the PKIX public key in PEM form
func (k *KeyPair) PublicKeyPEM() string {
	return k.publicPEM
}

// PublicKey returns the RSA public key
func (k *KeyPair) PublicKey() *rsa.PublicKey {
	return &k.private.PublicKey
}

// DecryptPassword decodes a base64 or base64url ciphertext and decrypts it
// with PKCS#1 v1.5 padding
func (k *KeyPair) DecryptPassword(encoded string) (string, error) {
	ciphertext, err := decodeBase64Any(strings.TrimSpace(encoded))
	if err != nil {
		return "", ErrDecryptPassword
	}
	plain, err := rsa.DecryptPKCS1v15(rand.Reader, k.private, ciphertext)
	if err != nil {
		return "", ErrDecryptPassword
	}
	if !utf8.Valid(plain) {
		return "", ErrDecryptPassword
	}
	return string(plain), nil
}

// EncryptPassword is the client-side counterpart of DecryptPassword
func EncryptPassword(pub *rsa.PublicKey, password string) (string, error) {
	ct, err := rsa.EncryptPKCS1v15(rand.Reader, pub, []byte(password))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

func decodeBase64Any(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("empty input")
	}
	if b, err := base64.StdEncoding.Strict().DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "=")); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
