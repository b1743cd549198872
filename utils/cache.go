package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
)

// Key 由调用参数生成内容寻址键 sha256(json(args))
func Key(args ...any) (string, error) {
	b, err := json.Marshal(args)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Cache 按键缓存计算结果
// @ 同一键同时只计算一次, 其余调用等待结果.
// @ 计算失败不缓存, 等待者重新竞争计算.
// @ 超出容量时淘汰最早写入的条目.
type Cache[V any] struct {
	mu      sync.Mutex      // 互斥锁，保护共享数据
	cond    *sync.Cond      // 条件变量，等待进行中的计算
	done    map[string]V    // 已完成结果
	pending map[string]bool // 正在计算的键
	order   []string        // 写入顺序
	limit   int             // 容量上限, 0 表示不限
}

// NewCache 创建缓存
func NewCache[V any](limit int) *Cache[V] {
	c := &Cache[V]{
		done:    make(map[string]V),
		pending: make(map[string]bool),
		limit:   limit,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Get 读取缓存
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.done[key]
	return v, ok
}

// Len 缓存条目数
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.done)
}

// Do 返回缓存结果, 不存在时调用 fn 计算并保存
func (c *Cache[V]) Do(key string, fn func() (V, error)) (V, error) {
	c.mu.Lock()
	for {
		if v, ok := c.done[key]; ok {
			c.mu.Unlock()
			return v, nil
		}
		if !c.pending[key] {
			break
		}
		c.cond.Wait()
	}
	c.pending[key] = true
	c.mu.Unlock()

	var (
		v   V
		err error
		ok  bool
	)
	// fn panic 时也要释放等待者
	defer func() {
		c.mu.Lock()
		delete(c.pending, key)
		if ok && err == nil {
			c.store(key, v)
		}
		c.cond.Broadcast()
		c.mu.Unlock()
	}()
	v, err = fn()
	ok = true
	return v, err
}

// store 写入并按容量淘汰, 调用方持有锁
func (c *Cache[V]) store(key string, v V) {
	if _, ok := c.done[key]; !ok {
		c.order = append(c.order, key)
	}
	c.done[key] = v
	for c.limit > 0 && len(c.order) > c.limit {
		delete(c.done, c.order[0])
		c.order = c.order[1:]
	}
}
