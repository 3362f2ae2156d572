// Package widgets - небольшие виджеты со своим состоянием: карусель роликов,
// список дел и сворачиваемая боковая панель.
package widgets

import (
	"fmt"
	"sync"
)

// Carousel - индекс активного слайда с переходом по кругу.
type Carousel struct {
	mu    sync.Mutex
	len   int
	index int
}

// NewCarousel создаёт карусель из n слайдов.
func NewCarousel(n int) *Carousel {
	return &Carousel{len: n}
}

// Set делает активным слайд n. Номер берётся по модулю длины, в том числе
// отрицательный. Возвращает новый индекс.
func (c *Carousel) Set(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set(n)
}

func (c *Carousel) set(n int) int {
	if c.len == 0 {
		c.index = 0
		return 0
	}
	c.index = ((n % c.len) + c.len) % c.len
	return c.index
}

// Next переходит к следующему слайду.
func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set(c.index + 1)
}

// Prev переходит к предыдущему слайду.
func (c *Carousel) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set(c.index - 1)
}

// Index возвращает активный слайд.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len возвращает число слайдов.
func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.len
}

// Resize меняет число слайдов и возвращает на первый.
func (c *Carousel) Resize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.len = n
	c.index = 0
}

// Checklist - список пунктов с отметкой "сделано".
type Checklist struct {
	mu    sync.Mutex
	items []string
	done  []bool
}

// NewChecklist создаёт список.
func NewChecklist(items ...string) *Checklist {
	return &Checklist{
		items: items,
		done:  make([]bool, len(items)),
	}
}

// Toggle переключает пункт i. Возвращает новое состояние.
func (c *Checklist) Toggle(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.done) {
		return false
	}
	c.done[i] = !c.done[i]
	return c.done[i]
}

// Done сообщает, отмечен ли пункт.
func (c *Checklist) Done(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return i >= 0 && i < len(c.done) && c.done[i]
}

// Items возвращает пункты.
func (c *Checklist) Items() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.items...)
}

// Count возвращает счётчик "сделано/всего".
func (c *Checklist) Count() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.done {
		if d {
			n++
		}
	}
	return fmt.Sprintf("%d/%d", n, len(c.items))
}
