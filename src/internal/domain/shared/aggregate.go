package shared

// PendingEvents 聚合根的待發布事件列表
//
// 聚合根嵌入此結構：狀態變更時 record，Repository 保存成功後由 Use Case PullEvents。
// 事件只被取出一次，取出後列表清空。
type PendingEvents struct {
	events []DomainEvent
}

// Record 加入待發布事件
func (p *PendingEvents) Record(event DomainEvent) {
	p.events = append(p.events, event)
}

// PullEvents 取出所有待發布事件並清空
func (p *PendingEvents) PullEvents() []DomainEvent {
	events := p.events
	p.events = nil
	return events
}

// PendingCount 待發布事件數量
func (p *PendingEvents) PendingCount() int {
	return len(p.events)
}
