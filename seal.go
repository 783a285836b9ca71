package anonymask

import (
	"context"
	"errors"
)

// SealMapping encodes mapping with codec and encrypts the result, so a
// caller can keep the mapping in its own storage between Anonymize and
// Deanonymize. The library itself never persists a mapping.
func SealMapping(ctx context.Context, mapping Mapping, codec Codec, enc Encryptor) ([]byte, error) {
	if mapping == nil {
		mapping = Mapping{}
	}

	data, err := codec.Marshal(mapping)
	if err != nil {
		err = newCodecError(ErrMarshal, err)
		emitMappingSealed(ctx, codec.ContentType(), len(mapping), 0, err)
		return nil, err
	}

	sealed, err := enc.Encrypt(data)
	if err != nil {
		err = errors.Join(ErrSeal, err)
		emitMappingSealed(ctx, codec.ContentType(), len(mapping), 0, err)
		return nil, err
	}

	emitMappingSealed(ctx, codec.ContentType(), len(mapping), len(sealed), nil)
	return sealed, nil
}

// OpenMapping reverses SealMapping. The codec and encryptor must match the
// ones used to seal.
func OpenMapping(ctx context.Context, sealed []byte, codec Codec, enc Encryptor) (Mapping, error) {
	data, err := enc.Decrypt(sealed)
	if err != nil {
		err = errors.Join(ErrOpen, err)
		emitMappingOpened(ctx, codec.ContentType(), len(sealed), 0, err)
		return nil, err
	}

	var mapping Mapping
	if err := codec.Unmarshal(data, &mapping); err != nil {
		err = newCodecError(ErrUnmarshal, err)
		emitMappingOpened(ctx, codec.ContentType(), len(sealed), 0, err)
		return nil, err
	}
	if mapping == nil {
		mapping = Mapping{}
	}

	emitMappingOpened(ctx, codec.ContentType(), len(sealed), len(mapping), nil)
	return mapping, nil
}
