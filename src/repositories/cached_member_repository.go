package repositories

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"familygraph/src/domain"
	"familygraph/src/infra/redis"
)

// CachedMemberRepository é um read-through sobre o MemberQueryRepository.
// Cada valor cacheado registra os membros que o compõem em sets
// registry:member:<id>; a escrita invalida por esses sets.
type CachedMemberRepository struct {
	memberQueryRepository *MemberQueryRepository
	redisClient           *redis.RedisClient
}

func NewCachedMemberRepository(
	memberQueryRepository *MemberQueryRepository,
	redisClient *redis.RedisClient,
) *CachedMemberRepository {
	return &CachedMemberRepository{
		memberQueryRepository: memberQueryRepository,
		redisClient:           redisClient,
	}
}

func (r *CachedMemberRepository) GetMemberWithRelationships(ctx context.Context, memberID int64) (*domain.MemberWithRelationships, error) {
	cacheKey := r.hashKey(fmt.Sprintf("member:%d", memberID))

	if r.redisClient != nil {
		var cached domain.MemberWithRelationships
		if found := r.getFromCache(ctx, cacheKey, &cached); found {
			return &cached, nil
		}
	}

	member, err := r.memberQueryRepository.GetMemberWithRelationships(ctx, memberID)
	if err != nil {
		return nil, err
	}

	registryIDs := make([]int64, 0, len(member.Relationships)+1)
	registryIDs = append(registryIDs, member.ID)
	for _, entry := range member.Relationships {
		registryIDs = append(registryIDs, entry.RelatedPersonID)
	}

	r.fillCacheInBackground(cacheKey, member, registryIDs)

	return member, nil
}

func (r *CachedMemberRepository) QueryFamilyTree(ctx context.Context, rootID int64, depthLimit int) ([]domain.TreeRow, error) {
	cacheKey := r.hashKey(fmt.Sprintf("tree:%d:depth:%d", rootID, depthLimit))

	if r.redisClient != nil {
		var cached []domain.TreeRow
		if found := r.getFromCache(ctx, cacheKey, &cached); found {
			return cached, nil
		}
	}

	treeRows, err := r.memberQueryRepository.QueryFamilyTree(ctx, rootID, depthLimit)
	if err != nil {
		return nil, err
	}

	registryIDs := make([]int64, 0, len(treeRows))
	for _, row := range treeRows {
		registryIDs = append(registryIDs, row.ID)
	}

	r.fillCacheInBackground(cacheKey, treeRows, registryIDs)

	return treeRows, nil
}

func (r *CachedMemberRepository) hashKey(keyData string) string {
	// Hash para chave mais limpa e consistente
	hash := md5.Sum([]byte(keyData))
	return fmt.Sprintf("family:%x", hash)
}

func (r *CachedMemberRepository) getFromCache(ctx context.Context, cacheKey string, target interface{}) bool {
	cachedJSON, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if err != nil {
		// Erro de cache não derruba a leitura; segue para o PostgreSQL.
		log.Printf("Cache error for key %s: %v", cacheKey, err)
		return false
	}
	if !found {
		log.Printf("Cache MISS for key: %s", cacheKey)
		return false
	}

	if err := json.Unmarshal([]byte(cachedJSON), target); err != nil {
		log.Printf("Failed to unmarshal cached data for key %s: %v", cacheKey, err)
		return false
	}

	log.Printf("Cache HIT for key: %s", cacheKey)
	return true
}

func (r *CachedMemberRepository) fillCacheInBackground(cacheKey string, value interface{}, registryMemberIDs []int64) {
	if r.redisClient == nil {
		return
	}

	go func() {
		// Timeout de 30 segundos para operação de cache
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		dataJSON, err := json.Marshal(value)
		if err != nil {
			log.Printf("Failed to marshal cache data for key %s: %v", cacheKey, err)
			return
		}

		registryKeys := make([]string, len(registryMemberIDs))
		for i, memberID := range registryMemberIDs {
			registryKeys[i] = fmt.Sprintf("registry:member:%d", memberID)
		}

		if err := r.redisClient.SetWithRegistry(ctx, cacheKey, string(dataJSON), registryKeys); err != nil {
			log.Printf("Failed to set cache with registry for key %s: %v", cacheKey, err)
			return
		}

		log.Printf("Cache SET with registry for key: %s (%d members)", cacheKey, len(registryMemberIDs))
	}()
}

func (r *CachedMemberRepository) InvalidateByMemberIDs(ctx context.Context, memberIDs []int64) error {
	if r.redisClient == nil || len(memberIDs) == 0 {
		return nil
	}

	registryKeys := make([]string, len(memberIDs))
	for i, memberID := range memberIDs {
		registryKeys[i] = fmt.Sprintf("registry:member:%d", memberID)
	}

	registryResults, err := r.redisClient.GetMultipleSetMembers(ctx, registryKeys)
	if err != nil {
		return fmt.Errorf("failed to get registry data: %w", err)
	}

	allKeysToDelete := make(map[string]bool)

	for registryKey, relatedKeys := range registryResults {
		// O próprio registry também sai
		allKeysToDelete[registryKey] = true

		for _, relatedKey := range relatedKeys {
			allKeysToDelete[relatedKey] = true
		}
	}

	keysToDelete := make([]string, 0, len(allKeysToDelete))
	for key := range allKeysToDelete {
		keysToDelete = append(keysToDelete, key)
	}

	if len(keysToDelete) > 0 {
		log.Printf("Invalidating %d cache keys for %d members", len(keysToDelete), len(memberIDs))
		return r.redisClient.InvalidateKeys(ctx, keysToDelete)
	}

	return nil
}
